package espflow

import (
	"context"
	"fmt"
	"time"

	sendpost "github.com/sendpost/sendpost-go"
)

const statDateLayout = "2006-01-02"

// missingSubAccountWarning covers every step that cannot run without a
// stored sub-account.
const missingSubAccountWarning = "No sub-account available. Please create or list sub-accounts first."

// listSubAccounts is step 1. The first listed sub-account is adopted
// when none is stored yet; a later create overwrites it.
func (r *Runner) listSubAccounts(ctx context.Context) {
	r.p.linef("Retrieving all sub-accounts...")

	subAccounts, err := r.client.ListSubAccounts(ctx)
	if err != nil {
		r.fail("list sub-accounts", err)
		return
	}

	r.p.okf("Retrieved %d sub-account(s)", len(subAccounts))
	for _, sa := range subAccounts {
		r.p.itemf("ID: %d", sa.ID)
		r.p.detailf("Name: %s", sa.Name)
		r.p.detailf("API Key: %s", sa.APIKey)
		r.p.detailf("Type: %s", subAccountTypeName(sa.Type))
		r.p.detailf("Blocked: %s", yesNo(sa.Blocked))
		if !sa.Created.IsZero() {
			r.p.detailf("Created: %s", sa.Created.Format(time.RFC3339))
		}
		r.p.blank()

		if r.state.SubAccountID == 0 && sa.ID != 0 {
			r.state.SubAccountID = sa.ID
			r.state.SubAccountName = sa.Name
			r.state.SubAccountKey = sa.APIKey
		}
	}
}

// createSubAccount is step 2. The created id and key replace whatever
// step 1 adopted.
func (r *Runner) createSubAccount(ctx context.Context) {
	name := fmt.Sprintf("ESP Client - %d", r.now().Unix())
	r.p.linef("Creating sub-account: %s", name)

	subAccount, err := r.client.CreateSubAccount(ctx, name)
	if err != nil {
		r.fail("create sub-account", err)
		return
	}

	r.state.SubAccountID = subAccount.ID
	r.state.SubAccountName = subAccount.Name
	r.state.SubAccountKey = subAccount.APIKey

	r.p.okf("Sub-account created successfully!")
	r.p.fieldf("ID: %d", subAccount.ID)
	r.p.fieldf("Name: %s", subAccount.Name)
	r.p.fieldf("API Key: %s", subAccount.APIKey)
	r.p.fieldf("Type: %s", subAccountTypeName(subAccount.Type))
}

// createWebhook is step 3. The webhook subscribes to every event type.
func (r *Runner) createWebhook(ctx context.Context) {
	r.p.linef("Creating webhook...")
	r.p.fieldf("URL: %s", r.cfg.WebhookURL)

	webhook, err := r.client.Webhooks().Create(ctx, r.cfg.WebhookURL)
	if err != nil {
		r.fail("create webhook", err)
		return
	}

	r.state.WebhookID = webhook.ID

	r.p.okf("Webhook created successfully!")
	r.p.fieldf("ID: %d", webhook.ID)
	r.p.fieldf("URL: %s", webhook.URL)
	r.p.fieldf("Enabled: %t", webhook.Enabled)
	if webhook.Secret != "" {
		r.p.fieldf("Signing Secret: %s", webhook.Secret)
	}
}

// listWebhooks is step 4.
func (r *Runner) listWebhooks(ctx context.Context) {
	r.p.linef("Retrieving all webhooks...")

	webhooks, err := r.client.Webhooks().List(ctx)
	if err != nil {
		r.fail("list webhooks", err)
		return
	}

	r.p.okf("Retrieved %d webhook(s)", len(webhooks))
	for _, wh := range webhooks {
		r.p.itemf("ID: %d", wh.ID)
		r.p.detailf("URL: %s", wh.URL)
		r.p.detailf("Enabled: %t", wh.Enabled)
		r.p.blank()
	}
}

// addDomain is step 5.
func (r *Runner) addDomain(ctx context.Context) {
	if r.state.SubAccountKey == "" {
		r.p.warnf(missingSubAccountWarning)
		return
	}

	r.p.linef("Adding domain: %s", r.cfg.DomainName)

	domain, err := r.subAccount().AddDomain(ctx, r.cfg.DomainName)
	if err != nil {
		r.fail("add domain", err)
		return
	}

	r.state.DomainID = domain.ID

	r.p.okf("Domain added successfully!")
	r.p.fieldf("ID: %d", domain.ID)
	r.p.fieldf("Domain: %s", domain.Name)
	r.p.fieldf("Verified: %s", yesNo(domain.Verified))
	if domain.DKIM != nil {
		r.p.fieldf("DKIM Record: %s", domain.DKIM.TextValue)
	}
	r.p.blank()
	r.p.warnf("IMPORTANT: Add the DNS records shown above to your domain's DNS settings to verify the domain.")
}

// listDomains is step 6.
func (r *Runner) listDomains(ctx context.Context) {
	if r.state.SubAccountKey == "" {
		r.p.warnf(missingSubAccountWarning)
		return
	}

	r.p.linef("Retrieving all domains...")

	domains, err := r.subAccount().ListDomains(ctx)
	if err != nil {
		r.fail("list domains", err)
		return
	}

	r.p.okf("Retrieved %d domain(s)", len(domains))
	for _, d := range domains {
		r.p.itemf("ID: %d", d.ID)
		r.p.detailf("Domain: %s", d.Name)
		r.p.detailf("Verified: %s", yesNo(d.Verified))
		r.p.blank()
	}
}

// sendTransactionalEmail is step 7. The first receipt's message id is
// stored for the later lookup step.
func (r *Runner) sendTransactionalEmail(ctx context.Context) {
	if r.state.SubAccountKey == "" {
		r.p.warnf(missingSubAccountWarning)
		return
	}

	msg := &sendpost.EmailMessage{
		From: sendpost.EmailAddress{Email: r.cfg.FromEmail, Name: "Your Company"},
		To: []sendpost.Recipient{{
			Email: r.cfg.ToEmail,
			Name:  "Customer",
			CustomFields: map[string]string{
				"customer_id": "67890",
				"order_value": "99.99",
			},
		}},
		Subject:     "Order Confirmation - Transactional Email",
		HTMLBody:    "<h1>Thank you for your order!</h1><p>Your order has been confirmed and will be processed shortly.</p>",
		TextBody:    "Thank you for your order! Your order has been confirmed and will be processed shortly.",
		TrackOpens:  true,
		TrackClicks: true,
		Headers: map[string]string{
			"X-Order-ID":   "12345",
			"X-Email-Type": "transactional",
		},
	}

	r.p.linef("Sending transactional email...")
	r.p.fieldf("From: %s", msg.From.Email)
	r.p.fieldf("To: %s", r.cfg.ToEmail)
	r.p.fieldf("Subject: %s", msg.Subject)

	receipts, err := r.subAccount().SendEmail(ctx, msg)
	if err != nil {
		r.fail("send email", err)
		return
	}

	if len(receipts) > 0 {
		first := receipts[0]
		r.state.MessageID = first.MessageID

		r.p.okf("Transactional email sent successfully!")
		r.p.fieldf("Message ID: %s", first.MessageID)
		r.p.fieldf("To: %s", first.To)
	}
}

// sendMarketingEmail is step 8. Its receipt only fills the stored
// message id when the transactional send left none.
func (r *Runner) sendMarketingEmail(ctx context.Context) {
	if r.state.SubAccountKey == "" {
		r.p.warnf(missingSubAccountWarning)
		return
	}

	msg := &sendpost.EmailMessage{
		From: sendpost.EmailAddress{Email: r.cfg.FromEmail, Name: "Marketing Team"},
		To: []sendpost.Recipient{{
			Email: r.cfg.ToEmail,
			Name:  "Customer 1",
		}},
		Subject: "Special Offer - 20% Off Everything!",
		HTMLBody: "<html><body>" +
			"<h1>Special Offer!</h1>" +
			"<p>Get 20% off on all products. Use code: <strong>SAVE20</strong></p>" +
			"<p><a href=\"https://example.com/shop\">Shop Now</a></p>" +
			"</body></html>",
		TextBody:    "Special Offer! Get 20% off on all products. Use code: SAVE20. Visit: https://example.com/shop",
		TrackOpens:  true,
		TrackClicks: true,
		Groups:      []string{"marketing", "promotional"},
		Headers: map[string]string{
			"X-Email-Type":  "marketing",
			"X-Campaign-ID": "campaign-001",
		},
	}

	r.p.linef("Sending marketing email...")
	r.p.fieldf("From: %s", msg.From.Email)
	r.p.fieldf("To: %s", r.cfg.ToEmail)
	r.p.fieldf("Subject: %s", msg.Subject)

	receipts, err := r.subAccount().SendEmail(ctx, msg)
	if err != nil {
		r.fail("send email", err)
		return
	}

	if len(receipts) > 0 {
		first := receipts[0]
		if r.state.MessageID == "" {
			r.state.MessageID = first.MessageID
		}

		r.p.okf("Marketing email sent successfully!")
		r.p.fieldf("Message ID: %s", first.MessageID)
		r.p.fieldf("To: %s", first.To)
	}
}

// getMessageDetails is step 9. Skipped when no send stored a message id.
func (r *Runner) getMessageDetails(ctx context.Context) {
	if r.state.MessageID == "" {
		r.p.warnf("No message ID available. Please send an email first.")
		return
	}

	r.p.linef("Retrieving message with ID: %s", r.state.MessageID)

	message, err := r.client.GetMessage(ctx, r.state.MessageID)
	if err != nil {
		r.fail("get message", err)
		return
	}

	r.p.okf("Message retrieved successfully!")
	r.p.fieldf("Message ID: %s", message.MessageID)
	r.p.fieldf("Account ID: %d", message.AccountID)
	r.p.fieldf("Sub-Account ID: %d", message.SubAccountID)
	r.p.fieldf("IP ID: %d", message.IPID)
	r.p.fieldf("Public IP: %s", message.PublicIP)
	r.p.fieldf("Local IP: %s", message.LocalIP)
	r.p.fieldf("Email Type: %s", message.EmailType)
	if !message.SubmittedAt.IsZero() {
		r.p.fieldf("Submitted At: %s", message.SubmittedAt.Format(time.RFC3339))
	}
	if message.From != nil {
		r.p.fieldf("From: %s", message.From.Email)
	}
	if message.To != nil {
		r.p.fieldf("To: %s", message.To.Email)
		if message.To.Name != "" {
			r.p.detailf("Name: %s", message.To.Name)
		}
	}
	if message.Subject != "" {
		r.p.fieldf("Subject: %s", message.Subject)
	}
	if message.IPPool != "" {
		r.p.fieldf("IP Pool: %s", message.IPPool)
	}
	if message.AttemptCount > 0 {
		r.p.fieldf("Delivery Attempts: %d", message.AttemptCount)
	}
}

// getSubAccountStats is step 10.
func (r *Runner) getSubAccountStats(ctx context.Context) {
	if r.state.SubAccountID == 0 || r.state.SubAccountKey == "" {
		r.p.warnf(missingSubAccountWarning)
		return
	}

	from, to := r.statWindow()
	r.p.linef("Retrieving stats for sub-account ID: %d", r.state.SubAccountID)
	r.p.fieldf("From: %s", from.Format(statDateLayout))
	r.p.fieldf("To: %s", to.Format(statDateLayout))

	stats, err := r.subAccount().Stats(ctx, from, to)
	if err != nil {
		r.fail("get stats", err)
		return
	}

	r.p.okf("Stats retrieved successfully!")
	r.p.fieldf("Retrieved %d stat record(s)", len(stats))

	var totalProcessed, totalDelivered int
	for _, day := range stats {
		r.p.blank()
		r.p.fieldf("Date: %s", day.Date)
		r.p.detailf("Processed: %d", day.Stats.Processed)
		r.p.detailf("Delivered: %d", day.Stats.Delivered)
		r.p.detailf("Dropped: %d", day.Stats.Dropped)
		r.p.detailf("Hard Bounced: %d", day.Stats.HardBounced)
		r.p.detailf("Soft Bounced: %d", day.Stats.SoftBounced)
		r.p.detailf("Unsubscribed: %d", day.Stats.Unsubscribed)
		r.p.detailf("Spam: %d", day.Stats.Spam)

		totalProcessed += day.Stats.Processed
		totalDelivered += day.Stats.Delivered
	}

	r.p.blank()
	r.p.fieldf("Summary (Last 7 days):")
	r.p.detailf("Total Processed: %d", totalProcessed)
	r.p.detailf("Total Delivered: %d", totalDelivered)
}

// getAggregateStats is step 11.
func (r *Runner) getAggregateStats(ctx context.Context) {
	if r.state.SubAccountID == 0 || r.state.SubAccountKey == "" {
		r.p.warnf(missingSubAccountWarning)
		return
	}

	from, to := r.statWindow()
	r.p.linef("Retrieving aggregate stats for sub-account ID: %d", r.state.SubAccountID)
	r.p.fieldf("From: %s", from.Format(statDateLayout))
	r.p.fieldf("To: %s", to.Format(statDateLayout))

	agg, err := r.subAccount().AggregateStats(ctx, from, to)
	if err != nil {
		r.fail("get aggregate stats", err)
		return
	}

	r.p.okf("Aggregate stats retrieved successfully!")
	r.p.fieldf("Processed: %d", agg.Processed)
	r.p.fieldf("Delivered: %d", agg.Delivered)
	r.p.fieldf("Dropped: %d", agg.Dropped)
	r.p.fieldf("Hard Bounced: %d", agg.HardBounced)
	r.p.fieldf("Soft Bounced: %d", agg.SoftBounced)
	r.p.fieldf("Unsubscribed: %d", agg.Unsubscribed)
	r.p.fieldf("Spam: %d", agg.Spam)
}

// listIPs is step 12. The listing is kept for the pool step.
func (r *Runner) listIPs(ctx context.Context) {
	r.p.linef("Retrieving all IPs...")

	ips, err := r.client.ListIPs(ctx)
	if err != nil {
		r.fail("list IPs", err)
		return
	}

	r.state.IPs = ips

	r.p.okf("Retrieved %d IP(s)", len(ips))
	for _, ip := range ips {
		r.p.itemf("ID: %d", ip.ID)
		r.p.detailf("IP Address: %s", ip.PublicIP)
		if ip.ReverseDNSHostname != "" {
			r.p.detailf("Reverse DNS: %s", ip.ReverseDNSHostname)
		}
		if !ip.Created.IsZero() {
			r.p.detailf("Created: %s", ip.Created.Format(time.RFC3339))
		}
		r.p.blank()
	}
}

// createIPPool is step 13. Skipped when step 12 found no IPs; the pool
// takes the first listed IP.
func (r *Runner) createIPPool(ctx context.Context) {
	if len(r.state.IPs) == 0 {
		r.p.warnf("No IPs available. Please allocate IPs first.")
		return
	}

	name := fmt.Sprintf("Marketing Pool - %d", r.now().Unix())
	poolIPs := []string{r.state.IPs[0].PublicIP}

	r.p.linef("Creating IP pool: %s", name)
	r.p.fieldf("Routing Strategy: Round Robin")
	r.p.fieldf("IPs: %d", len(poolIPs))

	pool, err := r.client.CreateIPPool(ctx, name, sendpost.RoutingRoundRobin, poolIPs)
	if err != nil {
		r.fail("create IP pool", err)
		return
	}

	r.state.IPPoolID = pool.ID

	r.p.okf("IP pool created successfully!")
	r.p.fieldf("ID: %d", pool.ID)
	r.p.fieldf("Name: %s", pool.Name)
	r.p.fieldf("Routing Strategy: %d", pool.RoutingStrategy)
	r.p.fieldf("IPs in pool: %d", len(pool.IPs))
}

// listIPPools is step 14.
func (r *Runner) listIPPools(ctx context.Context) {
	r.p.linef("Retrieving all IP pools...")

	pools, err := r.client.ListIPPools(ctx)
	if err != nil {
		r.fail("list IP pools", err)
		return
	}

	r.p.okf("Retrieved %d IP pool(s)", len(pools))
	for _, pool := range pools {
		r.p.itemf("ID: %d", pool.ID)
		r.p.detailf("Name: %s", pool.Name)
		r.p.detailf("Routing Strategy: %d", pool.RoutingStrategy)
		r.p.detailf("IPs in pool: %d", len(pool.IPs))
		for _, ip := range pool.IPs {
			r.p.detailf("  - %s", ip.PublicIP)
		}
		r.p.blank()
	}
}

// getAccountStats is step 15.
func (r *Runner) getAccountStats(ctx context.Context) {
	from, to := r.statWindow()
	r.p.linef("Retrieving account-level stats...")
	r.p.fieldf("From: %s", from.Format(statDateLayout))
	r.p.fieldf("To: %s", to.Format(statDateLayout))

	stats, err := r.client.AccountStats(ctx, from, to)
	if err != nil {
		r.fail("get account stats", err)
		return
	}

	r.p.okf("Account stats retrieved successfully!")
	r.p.fieldf("Retrieved %d stat record(s)", len(stats))

	for _, day := range stats {
		r.p.blank()
		r.p.fieldf("Date: %s", day.Date)
		r.p.detailf("Processed: %d", day.Stats.Processed)
		r.p.detailf("Delivered: %d", day.Stats.Delivered)
		r.p.detailf("Dropped: %d", day.Stats.Dropped)
		r.p.detailf("Hard Bounced: %d", day.Stats.HardBounced)
		r.p.detailf("Soft Bounced: %d", day.Stats.SoftBounced)
		r.p.detailf("Opens: %d", day.Stats.Opened)
		r.p.detailf("Clicks: %d", day.Stats.Clicked)
		r.p.detailf("Unsubscribed: %d", day.Stats.Unsubscribed)
		r.p.detailf("Spams: %d", day.Stats.Spam)
	}
}

func subAccountTypeName(t sendpost.SubAccountType) string {
	if t == sendpost.SubAccountPlus {
		return "Plus"
	}
	return "Regular"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
