// Package espflow drives a fixed fifteen-step demonstration workflow
// against the SendPost API, covering sub-accounts, webhooks, sending
// domains, transactional and marketing sends, message lookup,
// statistics, IPs, and IP pools.
//
// Every step prints a human-readable summary and continues on failure,
// so a run always reaches step fifteen even with placeholder
// credentials. Steps whose prerequisite is missing are skipped with a
// warning and issue no remote call.
package espflow

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	sendpost "github.com/sendpost/sendpost-go"
)

// Runner executes the workflow steps in order, storing produced ids in
// the session state for later steps to use.
type Runner struct {
	client   *sendpost.Client
	cfg      Config
	state    SessionState
	p        *printer
	out      io.Writer
	useColor bool
	now      func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput redirects the workflow's console output. The default is
// os.Stdout.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// WithoutColor disables colored output.
func WithoutColor() RunnerOption {
	return func(r *Runner) {
		r.useColor = false
	}
}

// WithSubAccountKey seeds the sub-account key used until the workflow
// adopts or creates a sub-account of its own.
func WithSubAccountKey(key string) RunnerOption {
	return func(r *Runner) {
		r.state.SubAccountKey = key
	}
}

// NewRunner builds a Runner around an existing client.
func NewRunner(client *sendpost.Client, cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:   client,
		cfg:      cfg,
		out:      os.Stdout,
		useColor: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.p = newPrinter(r.out, r.useColor)
	return r
}

// State returns a copy of the accumulated session state.
func (r *Runner) State() SessionState {
	return r.state
}

type step struct {
	title string
	run   func(context.Context)
}

// steps returns the fifteen workflow steps in canonical order.
func (r *Runner) steps() []step {
	return []step{
		{"Listing All Sub-Accounts", r.listSubAccounts},
		{"Creating Sub-Account", r.createSubAccount},
		{"Creating Webhook", r.createWebhook},
		{"Listing All Webhooks", r.listWebhooks},
		{"Adding Domain", r.addDomain},
		{"Listing All Domains", r.listDomains},
		{"Sending Transactional Email", r.sendTransactionalEmail},
		{"Sending Marketing Email", r.sendMarketingEmail},
		{"Retrieving Message Details", r.getMessageDetails},
		{"Getting Sub-Account Statistics", r.getSubAccountStats},
		{"Getting Aggregate Statistics", r.getAggregateStats},
		{"Listing All IPs", r.listIPs},
		{"Creating IP Pool", r.createIPPool},
		{"Listing All IP Pools", r.listIPPools},
		{"Getting Account-Level Statistics", r.getAccountStats},
	}
}

// Run executes all fifteen steps in order and returns the final
// session state. Step failures are printed, never propagated.
func (r *Runner) Run(ctx context.Context) SessionState {
	r.p.box("SendPost Go SDK - ESP Example Workflow")

	for i, s := range r.steps() {
		r.p.step(i+1, s.title)
		s.run(ctx)
	}

	r.p.blank()
	r.p.box("Workflow Complete!")
	return r.state
}

// Group names a related subset of workflow steps.
type Group string

// Step groups selectable in interactive mode.
const (
	GroupSubAccounts Group = "sub-accounts"
	GroupWebhooks    Group = "webhooks"
	GroupDomains     Group = "domains"
	GroupSending     Group = "sending"
	GroupStats       Group = "statistics"
	GroupIPs         Group = "ips"
)

// Groups returns the selectable step groups in workflow order.
func Groups() []Group {
	return []Group{
		GroupSubAccounts,
		GroupWebhooks,
		GroupDomains,
		GroupSending,
		GroupStats,
		GroupIPs,
	}
}

var groupSteps = map[Group][]int{
	GroupSubAccounts: {1, 2},
	GroupWebhooks:    {3, 4},
	GroupDomains:     {5, 6},
	GroupSending:     {7, 8, 9},
	GroupStats:       {10, 11, 15},
	GroupIPs:         {12, 13, 14},
}

// RunGroup executes one step group. Steps keep their workflow numbers.
func (r *Runner) RunGroup(ctx context.Context, g Group) SessionState {
	steps := r.steps()
	for _, n := range groupSteps[g] {
		s := steps[n-1]
		r.p.step(n, s.title)
		s.run(ctx)
	}
	return r.state
}

// fail prints a step failure. Remote API rejections carry their status
// and response body; anything else prints as-is.
func (r *Runner) fail(what string, err error) {
	var apiErr *sendpost.APIError
	if errors.As(err, &apiErr) {
		r.p.errf("Failed to %s:", what)
		r.p.fieldf("Status code: %d", apiErr.StatusCode)
		r.p.fieldf("Response body: %s", apiErr.Message)
		return
	}
	r.p.errf("Unexpected error: %v", err)
}

// subAccount returns a handle bound to the stored sub-account.
func (r *Runner) subAccount() *sendpost.SubAccount {
	return r.client.SubAccount(r.state.SubAccountID, r.state.SubAccountKey)
}

// statWindow is the 7-day reporting window ending today, inclusive.
func (r *Runner) statWindow() (from, to time.Time) {
	to = r.now()
	from = to.AddDate(0, 0, -7)
	return from, to
}
