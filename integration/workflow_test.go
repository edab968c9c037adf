//go:build integration

package integration

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	sendpost "github.com/sendpost/sendpost-go"
	"github.com/sendpost/sendpost-go/espflow"
)

// TestIntegration_FullWorkflow runs the fifteen-step workflow against
// the configured deployment. Send steps fail harmlessly when the
// placeholder addresses are left in place; the sequence still reaches
// the final step and everything it created is removed afterwards.
func TestIntegration_FullWorkflow(t *testing.T) {
	client := newClient(t)

	cfg := espflow.DefaultConfig()
	if v := os.Getenv("SENDPOST_FROM_EMAIL"); v != "" {
		cfg.FromEmail = v
	}
	if v := os.Getenv("SENDPOST_TO_EMAIL"); v != "" {
		cfg.ToEmail = v
	}
	if v := os.Getenv("SENDPOST_DOMAIN"); v != "" {
		cfg.DomainName = v
	}
	if v := os.Getenv("SENDPOST_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}

	var out bytes.Buffer
	runner := espflow.NewRunner(client, cfg,
		espflow.WithOutput(&out),
		espflow.WithoutColor(),
		espflow.WithSubAccountKey(subAccountKey),
	)

	state := runner.Run(context.Background())
	t.Cleanup(func() { cleanupWorkflowState(t, client, state) })

	text := out.String()
	if !strings.Contains(text, "Workflow Complete!") {
		t.Fatalf("workflow did not finish:\n%s", text)
	}

	if state.SubAccountID == 0 {
		t.Error("workflow created no sub-account")
	}
	if state.WebhookID == 0 {
		t.Error("workflow created no webhook")
	}
	if strings.Contains(text, "✗") {
		t.Logf("workflow had failing steps:\n%s", text)
	}
}

// cleanupWorkflowState removes everything a workflow run created,
// tolerating resources a failed step never produced.
func cleanupWorkflowState(t *testing.T, client *sendpost.Client, state espflow.SessionState) {
	t.Helper()
	ctx := context.Background()

	if state.DomainID != 0 && state.SubAccountKey != "" {
		sub := client.SubAccount(state.SubAccountID, state.SubAccountKey)
		if err := sub.DeleteDomain(ctx, state.DomainID); err != nil {
			t.Logf("cleanup: DeleteDomain(%d) error = %v", state.DomainID, err)
		}
	}
	if state.WebhookID != 0 {
		if err := client.Webhooks().Delete(ctx, state.WebhookID); err != nil {
			t.Logf("cleanup: webhook Delete(%d) error = %v", state.WebhookID, err)
		}
	}
	if state.IPPoolID != 0 {
		if err := client.DeleteIPPool(ctx, state.IPPoolID); err != nil {
			t.Logf("cleanup: DeleteIPPool(%d) error = %v", state.IPPoolID, err)
		}
	}
	if state.SubAccountID != 0 {
		if err := client.DeleteSubAccount(ctx, state.SubAccountID); err != nil {
			t.Logf("cleanup: DeleteSubAccount(%d) error = %v", state.SubAccountID, err)
		}
	}
}
