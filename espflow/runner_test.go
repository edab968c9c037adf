package espflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	sendpost "github.com/sendpost/sendpost-go"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// recordedRequest is one request seen by the fake API.
type recordedRequest struct {
	method     string
	path       string
	query      url.Values
	accountKey string
	subKey     string
}

// requestLog records every request the workflow issues, so tests can
// prove which steps called the API and which were skipped.
type requestLog struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reqs = append(l.reqs, recordedRequest{
		method:     r.Method,
		path:       r.URL.Path,
		query:      r.URL.Query(),
		accountKey: r.Header.Get("X-Account-ApiKey"),
		subKey:     r.Header.Get("X-SubAccount-ApiKey"),
	})
}

func (l *requestLog) total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reqs)
}

// count returns how many requests matched the method and path prefix.
func (l *requestLog) count(method, pathPrefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, req := range l.reqs {
		if req.method == method && strings.HasPrefix(req.path, pathPrefix) {
			n++
		}
	}
	return n
}

// first returns the first request matching the method and exact path.
func (l *requestLog) first(method, path string) (recordedRequest, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, req := range l.reqs {
		if req.method == method && req.path == path {
			return req, true
		}
	}
	return recordedRequest{}, false
}

// newTestRunner wires a Runner to a fake API, capturing output in a
// buffer and pinning the clock to fixedNow.
func newTestRunner(t *testing.T, handler http.HandlerFunc, opts ...RunnerOption) (*Runner, *requestLog, *bytes.Buffer) {
	t.Helper()

	log := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := sendpost.New("acct-key",
		sendpost.WithBaseURL(server.URL),
		sendpost.WithRetryOn([]int{}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	var out bytes.Buffer
	runner := NewRunner(client, DefaultConfig(),
		append([]RunnerOption{WithOutput(&out), WithoutColor()}, opts...)...)
	runner.now = func() time.Time { return fixedNow }
	return runner, log, &out
}

// happyAPI answers every workflow endpoint successfully. Sends are
// numbered so the transactional receipt is msg-1.
func happyAPI() http.HandlerFunc {
	var mu sync.Mutex
	sends := 0
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /account/subaccounts":
			io.WriteString(w, `[]`)
		case "POST /account/subaccounts":
			io.WriteString(w, `{"id":42,"name":"ESP Client - 1770000000","api_key":"created-sub-key","type":0}`)
		case "POST /account/webhooks":
			io.WriteString(w, `{"id":5,"url":"https://your-webhook-endpoint.com/webhook","enabled":true,"secret":"whsec_c2VjcmV0"}`)
		case "GET /account/webhooks":
			io.WriteString(w, `[{"id":5,"url":"https://your-webhook-endpoint.com/webhook","enabled":true}]`)
		case "POST /subaccount/domains":
			io.WriteString(w, `{"id":11,"name":"yourdomain.com","verified":false,"dkim":{"selector":"sp","text_value":"k=rsa; p=MIGf"}}`)
		case "GET /subaccount/domains":
			io.WriteString(w, `[{"id":11,"name":"yourdomain.com","verified":false}]`)
		case "POST /subaccount/email":
			mu.Lock()
			sends++
			n := sends
			mu.Unlock()
			fmt.Fprintf(w, `[{"message_id":"msg-%d","to":"recipient@example.com","submitted_at":"2026-03-10T12:00:00Z"}]`, n)
		case "GET /account/messages/msg-1":
			io.WriteString(w, `{"message_id":"msg-1","account_id":7,"sub_account_id":42,"ip_id":1,"public_ip":"198.51.100.10","local_ip":"10.0.0.4","email_type":"transactional","submitted_at":"2026-03-10T12:00:00Z","from":{"email":"sender@yourdomain.com"},"to":{"email":"recipient@example.com","name":"Customer"},"subject":"Order Confirmation - Transactional Email"}`)
		case "GET /subaccount/stat":
			io.WriteString(w, `[{"date":"2026-03-04","stats":{"processed":12,"delivered":10,"dropped":1,"hard_bounced":1,"soft_bounced":0,"opened":4,"clicked":2,"unsubscribed":0,"spam":0}}]`)
		case "GET /subaccount/stat/aggregate":
			io.WriteString(w, `{"processed":12,"delivered":10,"dropped":1,"hard_bounced":1}`)
		case "GET /account/ips":
			io.WriteString(w, `[{"id":1,"public_ip":"198.51.100.10","reverse_dns_hostname":"mail1.example.com"},{"id":2,"public_ip":"198.51.100.11"}]`)
		case "POST /account/ippools":
			io.WriteString(w, `{"id":3,"name":"Marketing Pool - 1770000000","routing_strategy":0,"ips":[{"id":1,"public_ip":"198.51.100.10"}]}`)
		case "GET /account/ippools":
			io.WriteString(w, `[{"id":3,"name":"Marketing Pool - 1770000000","routing_strategy":0,"ips":[{"id":1,"public_ip":"198.51.100.10"}]}]`)
		case "GET /account/stat":
			io.WriteString(w, `[{"date":"2026-03-04","stats":{"processed":40,"delivered":36,"opened":9,"clicked":3}}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"no such route"}`)
		}
	}
}

func TestRunner_Run_CompletesAllSteps(t *testing.T) {
	runner, _, out := newTestRunner(t, happyAPI())

	state := runner.Run(context.Background())

	if state.SubAccountID != 42 {
		t.Errorf("SubAccountID = %d, want 42", state.SubAccountID)
	}
	if state.SubAccountKey != "created-sub-key" {
		t.Errorf("SubAccountKey = %s, want created-sub-key", state.SubAccountKey)
	}
	if state.WebhookID != 5 {
		t.Errorf("WebhookID = %d, want 5", state.WebhookID)
	}
	if state.DomainID != 11 {
		t.Errorf("DomainID = %d, want 11", state.DomainID)
	}
	if state.MessageID != "msg-1" {
		t.Errorf("MessageID = %s, want msg-1", state.MessageID)
	}
	if len(state.IPs) != 2 {
		t.Errorf("len(IPs) = %d, want 2", len(state.IPs))
	}
	if state.IPPoolID != 3 {
		t.Errorf("IPPoolID = %d, want 3", state.IPPoolID)
	}

	output := out.String()
	for i := 1; i <= 15; i++ {
		banner := fmt.Sprintf("=== Step %d:", i)
		if !strings.Contains(output, banner) {
			t.Errorf("output missing %q", banner)
		}
	}
	if !strings.Contains(output, "Workflow Complete!") {
		t.Error("output missing completion banner")
	}
	if !strings.Contains(output, "✓ Transactional email sent successfully!") {
		t.Error("output missing transactional send confirmation")
	}
	if strings.Contains(output, "✗") {
		t.Errorf("output contains failures:\n%s", output)
	}
}

func TestRunner_Run_PropagatesCreatedKey(t *testing.T) {
	runner, log, _ := newTestRunner(t, happyAPI())

	runner.Run(context.Background())

	for _, path := range []string{"/subaccount/domains", "/subaccount/email"} {
		req, ok := log.first("POST", path)
		if !ok {
			t.Fatalf("no POST %s recorded", path)
		}
		if req.subKey != "created-sub-key" {
			t.Errorf("POST %s X-SubAccount-ApiKey = %s, want created-sub-key", path, req.subKey)
		}
		if req.accountKey != "" {
			t.Errorf("POST %s carries account key %s, want none", path, req.accountKey)
		}
	}

	req, ok := log.first("POST", "/account/subaccounts")
	if !ok {
		t.Fatal("no POST /account/subaccounts recorded")
	}
	if req.accountKey != "acct-key" {
		t.Errorf("POST /account/subaccounts X-Account-ApiKey = %s, want acct-key", req.accountKey)
	}
}

func TestRunner_Run_ContinuesPastFailures(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"backend down"}`)
	}
	runner, log, out := newTestRunner(t, handler, WithSubAccountKey("seeded-key"))

	runner.Run(context.Background())

	output := out.String()
	for i := 1; i <= 15; i++ {
		banner := fmt.Sprintf("=== Step %d:", i)
		if !strings.Contains(output, banner) {
			t.Errorf("output missing %q", banner)
		}
	}
	if !strings.Contains(output, "Workflow Complete!") {
		t.Error("output missing completion banner")
	}
	if !strings.Contains(output, "Status code: 500") {
		t.Error("output missing failure status code")
	}
	if !strings.Contains(output, "Response body: backend down") {
		t.Error("output missing failure response body")
	}

	// Steps 9 and 13 lost their prerequisites to earlier failures and
	// must skip without calling the API. Steps 10 and 11 skip too: the
	// seeded key alone is not a stored sub-account.
	if n := log.count("GET", "/account/messages/"); n != 0 {
		t.Errorf("message lookups = %d, want 0", n)
	}
	if n := log.count("POST", "/account/ippools"); n != 0 {
		t.Errorf("IP pool creations = %d, want 0", n)
	}
	if n := log.count("GET", "/subaccount/stat"); n != 0 {
		t.Errorf("sub-account stat calls = %d, want 0", n)
	}
	if !strings.Contains(output, "No message ID available. Please send an email first.") {
		t.Error("output missing message lookup skip warning")
	}
	if !strings.Contains(output, "No IPs available. Please allocate IPs first.") {
		t.Error("output missing IP pool skip warning")
	}

	// Steps 1-8 plus 12, 14, 15 each issue exactly one request.
	if log.total() != 11 {
		t.Errorf("requests = %d, want 11", log.total())
	}
}

func TestRunner_Run_SkipsSubAccountStepsWithoutKey(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"backend down"}`)
	}
	runner, log, out := newTestRunner(t, handler)

	runner.Run(context.Background())

	if n := log.count("GET", "/subaccount/"); n != 0 {
		t.Errorf("sub-account GETs = %d, want 0", n)
	}
	if n := log.count("POST", "/subaccount/"); n != 0 {
		t.Errorf("sub-account POSTs = %d, want 0", n)
	}
	if !strings.Contains(out.String(), missingSubAccountWarning) {
		t.Error("output missing sub-account skip warning")
	}

	// Only the account-scoped steps 1-4, 12, 14, 15 reach the API.
	if log.total() != 7 {
		t.Errorf("requests = %d, want 7", log.total())
	}
}

func TestRunner_Run_AdoptsListedSubAccount(t *testing.T) {
	happy := happyAPI()
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /account/subaccounts":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"id":9,"name":"Existing","api_key":"listed-key","type":1}]`)
		case "POST /account/subaccounts":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"message":"sub-account limit reached"}`)
		default:
			happy(w, r)
		}
	}
	runner, log, _ := newTestRunner(t, handler)

	state := runner.Run(context.Background())

	if state.SubAccountID != 9 {
		t.Errorf("SubAccountID = %d, want 9", state.SubAccountID)
	}
	if state.SubAccountKey != "listed-key" {
		t.Errorf("SubAccountKey = %s, want listed-key", state.SubAccountKey)
	}
	if state.SubAccountName != "Existing" {
		t.Errorf("SubAccountName = %s, want Existing", state.SubAccountName)
	}

	req, ok := log.first("POST", "/subaccount/domains")
	if !ok {
		t.Fatal("no POST /subaccount/domains recorded")
	}
	if req.subKey != "listed-key" {
		t.Errorf("X-SubAccount-ApiKey = %s, want listed-key", req.subKey)
	}
}

func TestRunner_Run_CreateOverwritesAdoptedSubAccount(t *testing.T) {
	happy := happyAPI()
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" && r.URL.Path == "/account/subaccounts" {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"id":9,"name":"Existing","api_key":"listed-key","type":1}]`)
			return
		}
		happy(w, r)
	}
	runner, log, _ := newTestRunner(t, handler)

	state := runner.Run(context.Background())

	if state.SubAccountID != 42 {
		t.Errorf("SubAccountID = %d, want 42", state.SubAccountID)
	}
	if state.SubAccountKey != "created-sub-key" {
		t.Errorf("SubAccountKey = %s, want created-sub-key", state.SubAccountKey)
	}

	req, ok := log.first("POST", "/subaccount/domains")
	if !ok {
		t.Fatal("no POST /subaccount/domains recorded")
	}
	if req.subKey != "created-sub-key" {
		t.Errorf("X-SubAccount-ApiKey = %s, want created-sub-key", req.subKey)
	}
}

func TestRunner_Run_StatWindow(t *testing.T) {
	runner, log, _ := newTestRunner(t, happyAPI())

	runner.Run(context.Background())

	for _, path := range []string{"/subaccount/stat", "/subaccount/stat/aggregate", "/account/stat"} {
		req, ok := log.first("GET", path)
		if !ok {
			t.Fatalf("no GET %s recorded", path)
		}
		if got := req.query.Get("from"); got != "2026-03-03" {
			t.Errorf("GET %s from = %s, want 2026-03-03", path, got)
		}
		if got := req.query.Get("to"); got != "2026-03-10" {
			t.Errorf("GET %s to = %s, want 2026-03-10", path, got)
		}
	}
}

func TestRunner_Run_MarketingReceiptFillsMissingMessageID(t *testing.T) {
	happy := happyAPI()
	var mu sync.Mutex
	sends := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /subaccount/email":
			mu.Lock()
			sends++
			n := sends
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			if n == 1 {
				w.WriteHeader(http.StatusUnprocessableEntity)
				io.WriteString(w, `{"message":"sender domain not verified"}`)
				return
			}
			io.WriteString(w, `[{"message_id":"msg-mkt","to":"recipient@example.com","submitted_at":"2026-03-10T12:00:00Z"}]`)
		case "GET /account/messages/msg-mkt":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"message_id":"msg-mkt","account_id":7,"sub_account_id":42,"email_type":"marketing"}`)
		default:
			happy(w, r)
		}
	}
	runner, log, _ := newTestRunner(t, handler)

	state := runner.Run(context.Background())

	if state.MessageID != "msg-mkt" {
		t.Errorf("MessageID = %s, want msg-mkt", state.MessageID)
	}
	if n := log.count("GET", "/account/messages/msg-mkt"); n != 1 {
		t.Errorf("lookups of msg-mkt = %d, want 1", n)
	}
}

func TestRunner_RunGroup_RunsOnlyGroupSteps(t *testing.T) {
	runner, log, out := newTestRunner(t, happyAPI())

	state := runner.RunGroup(context.Background(), GroupIPs)

	output := out.String()
	if !strings.Contains(output, "=== Step 12: Listing All IPs ===") {
		t.Error("output missing step 12 banner")
	}
	if !strings.Contains(output, "=== Step 13: Creating IP Pool ===") {
		t.Error("output missing step 13 banner")
	}
	if !strings.Contains(output, "=== Step 14: Listing All IP Pools ===") {
		t.Error("output missing step 14 banner")
	}
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 15} {
		banner := fmt.Sprintf("=== Step %d:", n)
		if strings.Contains(output, banner) {
			t.Errorf("output contains %q, want IP steps only", banner)
		}
	}

	if state.IPPoolID != 3 {
		t.Errorf("IPPoolID = %d, want 3", state.IPPoolID)
	}
	if n := log.count("GET", "/account/subaccounts"); n != 0 {
		t.Errorf("sub-account lists = %d, want 0", n)
	}
}

func TestGroups_CoverAllSteps(t *testing.T) {
	seen := make(map[int]int)
	for _, g := range Groups() {
		for _, n := range groupSteps[g] {
			seen[n]++
		}
	}
	for n := 1; n <= 15; n++ {
		if seen[n] != 1 {
			t.Errorf("step %d appears %d times across groups, want 1", n, seen[n])
		}
	}
}
