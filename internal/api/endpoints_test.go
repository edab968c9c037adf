package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		AccountKey: "acct-key",
		RetryOn:    []int{},
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestListSubAccounts(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/account/subaccounts" {
			t.Errorf("path = %s, want /account/subaccounts", r.URL.Path)
		}
		if r.Header.Get("X-Account-ApiKey") != "acct-key" {
			t.Errorf("X-Account-ApiKey = %s, want acct-key", r.Header.Get("X-Account-ApiKey"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]SubAccountDTO{
			{ID: 1, Name: "primary", APIKey: "sub-key-1"},
			{ID: 2, Name: "secondary", APIKey: "sub-key-2", Blocked: true},
		})
	})

	subs, err := client.ListSubAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListSubAccounts() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[0].APIKey != "sub-key-1" {
		t.Errorf("subs[0].APIKey = %s, want sub-key-1", subs[0].APIKey)
	}
}

func TestCreateSubAccount(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/account/subaccounts" {
			t.Errorf("path = %s, want /account/subaccounts", r.URL.Path)
		}

		var req CreateSubAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if req.Name != "ESP Client - 12345" {
			t.Errorf("name = %s, want ESP Client - 12345", req.Name)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SubAccountDTO{ID: 7, Name: req.Name, APIKey: "fresh-key"})
	})

	sub, err := client.CreateSubAccount(context.Background(), &CreateSubAccountRequest{
		Name: "ESP Client - 12345",
	})
	if err != nil {
		t.Fatalf("CreateSubAccount() error = %v", err)
	}
	if sub.ID != 7 {
		t.Errorf("ID = %d, want 7", sub.ID)
	}
	if sub.APIKey != "fresh-key" {
		t.Errorf("APIKey = %s, want fresh-key", sub.APIKey)
	}
}

func TestGetSubAccount_NotFound(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such sub-account"})
	})

	_, err := client.GetSubAccount(context.Background(), 99)
	if !errors.Is(err, ErrSubAccountNotFound) {
		t.Errorf("GetSubAccount() error = %v, want ErrSubAccountNotFound", err)
	}
}

func TestUpdateSubAccount(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/account/subaccounts/42" {
			t.Errorf("path = %s, want /account/subaccounts/42", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SubAccountDTO{ID: 42, Name: "renamed"})
	})

	sub, err := client.UpdateSubAccount(context.Background(), 42, &UpdateSubAccountRequest{Name: "renamed"})
	if err != nil {
		t.Fatalf("UpdateSubAccount() error = %v", err)
	}
	if sub.Name != "renamed" {
		t.Errorf("Name = %s, want renamed", sub.Name)
	}
}

func TestDeleteSubAccount(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		if r.URL.Path != "/account/subaccounts/42" {
			t.Errorf("path = %s, want /account/subaccounts/42", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteSubAccount(context.Background(), 42); err != nil {
		t.Fatalf("DeleteSubAccount() error = %v", err)
	}
}

func TestCreateWebhook(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/account/webhooks" {
			t.Errorf("path = %s, want /account/webhooks", r.URL.Path)
		}

		var req CreateWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if req.URL != "https://hooks.example.com/sendpost" {
			t.Errorf("url = %s, want https://hooks.example.com/sendpost", req.URL)
		}
		if !req.HardBounced || !req.Spam {
			t.Error("event flags not carried in request body")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(WebhookDTO{ID: 3, URL: req.URL, Enabled: req.Enabled, Secret: "whsec_abc"})
	})

	hook, err := client.CreateWebhook(context.Background(), &CreateWebhookRequest{
		URL:         "https://hooks.example.com/sendpost",
		Enabled:     true,
		HardBounced: true,
		Spam:        true,
	})
	if err != nil {
		t.Fatalf("CreateWebhook() error = %v", err)
	}
	if hook.ID != 3 {
		t.Errorf("ID = %d, want 3", hook.ID)
	}
	if hook.Secret != "whsec_abc" {
		t.Errorf("Secret = %s, want whsec_abc", hook.Secret)
	}
}

func TestListWebhooks_Error(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "server error"})
	})

	_, err := client.ListWebhooks(context.Background())
	if err == nil {
		t.Fatal("ListWebhooks() should return error for 500 response")
	}
}

func TestGetWebhook_NotFound(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "webhook not found"})
	})

	_, err := client.GetWebhook(context.Background(), 5)
	if !errors.Is(err, ErrWebhookNotFound) {
		t.Errorf("GetWebhook() error = %v, want ErrWebhookNotFound", err)
	}
}

func TestCreateDomain(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/subaccount/domains" {
			t.Errorf("path = %s, want /subaccount/domains", r.URL.Path)
		}
		if r.Header.Get("X-SubAccount-ApiKey") != "sub-key" {
			t.Errorf("X-SubAccount-ApiKey = %s, want sub-key", r.Header.Get("X-SubAccount-ApiKey"))
		}
		if r.Header.Get("X-Account-ApiKey") != "" {
			t.Errorf("X-Account-ApiKey leaked into sub-account request")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DomainDTO{
			ID:   11,
			Name: "yourdomain.com",
			DKIM: &DKIMDTO{Selector: "sp", TextValue: "k=rsa; p=MIGf..."},
		})
	})

	domain, err := client.CreateDomain(context.Background(), "sub-key", &CreateDomainRequest{Name: "yourdomain.com"})
	if err != nil {
		t.Fatalf("CreateDomain() error = %v", err)
	}
	if domain.ID != 11 {
		t.Errorf("ID = %d, want 11", domain.ID)
	}
	if domain.DKIM == nil || domain.DKIM.Selector != "sp" {
		t.Errorf("DKIM = %+v, want selector sp", domain.DKIM)
	}
}

func TestListDomains_MissingKey(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued without a sub-account key")
	})

	_, err := client.ListDomains(context.Background(), "")
	if !errors.Is(err, ErrMissingSubAccountKey) {
		t.Errorf("ListDomains() error = %v, want ErrMissingSubAccountKey", err)
	}
}

func TestVerifyDomain(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/subaccount/domains/11/verify" {
			t.Errorf("path = %s, want /subaccount/domains/11/verify", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DomainDTO{ID: 11, Name: "yourdomain.com", Verified: true})
	})

	domain, err := client.VerifyDomain(context.Background(), "sub-key", 11)
	if err != nil {
		t.Fatalf("VerifyDomain() error = %v", err)
	}
	if !domain.Verified {
		t.Error("Verified = false, want true")
	}
}

func TestSendEmail_ReceiptPerRecipient(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/subaccount/email" {
			t.Errorf("path = %s, want /subaccount/email", r.URL.Path)
		}

		var req SendEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if req.From.Email != "sender@yourdomain.com" {
			t.Errorf("from = %s, want sender@yourdomain.com", req.From.Email)
		}
		if len(req.To) != 2 {
			t.Fatalf("len(to) = %d, want 2", len(req.To))
		}
		if req.To[0].CustomFields["customer_id"] != "67890" {
			t.Errorf("custom_fields = %v, want customer_id 67890", req.To[0].CustomFields)
		}
		if !req.TrackOpens || !req.TrackClicks {
			t.Error("tracking flags not carried in request body")
		}

		receipts := make([]SendReceiptDTO, len(req.To))
		for i, rcpt := range req.To {
			receipts[i] = SendReceiptDTO{
				MessageID:   "msg-" + rcpt.Email,
				To:          rcpt.Email,
				SubmittedAt: time.Now(),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(receipts)
	})

	receipts, err := client.SendEmail(context.Background(), "sub-key", &SendEmailRequest{
		From: EmailAddressDTO{Email: "sender@yourdomain.com", Name: "Your Company"},
		To: []RecipientDTO{
			{Email: "a@example.com", CustomFields: map[string]string{"customer_id": "67890"}},
			{Email: "b@example.com"},
		},
		Subject:     "Order Confirmation - Transactional Email",
		TrackOpens:  true,
		TrackClicks: true,
	})
	if err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("len(receipts) = %d, want 2", len(receipts))
	}
	if receipts[0].MessageID != "msg-a@example.com" {
		t.Errorf("receipts[0].MessageID = %s, want msg-a@example.com", receipts[0].MessageID)
	}
	if receipts[1].To != "b@example.com" {
		t.Errorf("receipts[1].To = %s, want b@example.com", receipts[1].To)
	}
}

func TestGetMessage(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/account/messages/msg-123" {
			t.Errorf("path = %s, want /account/messages/msg-123", r.URL.Path)
		}
		if r.Header.Get("X-Account-ApiKey") != "acct-key" {
			t.Errorf("X-Account-ApiKey = %s, want acct-key", r.Header.Get("X-Account-ApiKey"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MessageDTO{
			MessageID: "msg-123",
			EmailType: "transactional",
			To:        &RecipientDTO{Email: "recipient@example.com"},
			Attempt:   1,
		})
	})

	msg, err := client.GetMessage(context.Background(), "msg-123")
	if err != nil {
		t.Fatalf("GetMessage() error = %v", err)
	}
	if msg.MessageID != "msg-123" {
		t.Errorf("MessageID = %s, want msg-123", msg.MessageID)
	}
	if msg.To == nil || msg.To.Email != "recipient@example.com" {
		t.Errorf("To = %+v, want recipient@example.com", msg.To)
	}
}

func TestGetMessage_NotFound(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "unknown message"})
	})

	_, err := client.GetMessage(context.Background(), "msg-missing")
	if !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("GetMessage() error = %v, want ErrMessageNotFound", err)
	}
}

func TestGetSubAccountStats_QueryWindow(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subaccount/stat" {
			t.Errorf("path = %s, want /subaccount/stat", r.URL.Path)
		}
		if got := r.URL.Query().Get("from"); got != "2026-08-14" {
			t.Errorf("from = %s, want 2026-08-14", got)
		}
		if got := r.URL.Query().Get("to"); got != "2026-08-21" {
			t.Errorf("to = %s, want 2026-08-21", got)
		}
		if r.Header.Get("X-SubAccount-ApiKey") != "sub-key" {
			t.Errorf("X-SubAccount-ApiKey = %s, want sub-key", r.Header.Get("X-SubAccount-ApiKey"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]DayStatDTO{
			{Date: "2026-08-14", Stats: &StatDTO{Processed: 10, Delivered: 9}},
			{Date: "2026-08-15", Stats: &StatDTO{Processed: 4, Delivered: 4}},
		})
	})

	stats, err := client.GetSubAccountStats(context.Background(), "sub-key", "2026-08-14", "2026-08-21")
	if err != nil {
		t.Fatalf("GetSubAccountStats() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	if stats[0].Stats.Delivered != 9 {
		t.Errorf("stats[0].Stats.Delivered = %d, want 9", stats[0].Stats.Delivered)
	}
}

func TestGetSubAccountAggregateStats(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subaccount/stat/aggregate" {
			t.Errorf("path = %s, want /subaccount/stat/aggregate", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(StatDTO{Processed: 14, Delivered: 13, SoftBounced: 1})
	})

	stat, err := client.GetSubAccountAggregateStats(context.Background(), "sub-key", "2026-08-14", "2026-08-21")
	if err != nil {
		t.Fatalf("GetSubAccountAggregateStats() error = %v", err)
	}
	if stat.Processed != 14 {
		t.Errorf("Processed = %d, want 14", stat.Processed)
	}
}

func TestGetAccountStats(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/stat" {
			t.Errorf("path = %s, want /account/stat", r.URL.Path)
		}
		if r.Header.Get("X-Account-ApiKey") != "acct-key" {
			t.Errorf("X-Account-ApiKey = %s, want acct-key", r.Header.Get("X-Account-ApiKey"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]DayStatDTO{
			{Date: "2026-08-20", Stats: &StatDTO{Processed: 2, Opened: 1, Clicked: 1}},
		})
	})

	stats, err := client.GetAccountStats(context.Background(), "2026-08-14", "2026-08-21")
	if err != nil {
		t.Fatalf("GetAccountStats() error = %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1", len(stats))
	}
	if stats[0].Stats.Opened != 1 {
		t.Errorf("stats[0].Stats.Opened = %d, want 1", stats[0].Stats.Opened)
	}
}

func TestListIPs(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/ips" {
			t.Errorf("path = %s, want /account/ips", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]IPDTO{
			{ID: 1, PublicIP: "192.0.2.10", ReverseDNSHostname: "mta1.example.com"},
			{ID: 2, PublicIP: "192.0.2.11"},
		})
	})

	ips, err := client.ListIPs(context.Background())
	if err != nil {
		t.Fatalf("ListIPs() error = %v", err)
	}
	if len(ips) != 2 {
		t.Fatalf("len(ips) = %d, want 2", len(ips))
	}
	if ips[0].PublicIP != "192.0.2.10" {
		t.Errorf("ips[0].PublicIP = %s, want 192.0.2.10", ips[0].PublicIP)
	}
}

func TestCreateIPPool(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/account/ippools" {
			t.Errorf("path = %s, want /account/ippools", r.URL.Path)
		}

		var req CreateIPPoolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if req.RoutingStrategy != 0 {
			t.Errorf("routing_strategy = %d, want 0", req.RoutingStrategy)
		}
		if len(req.IPs) != 1 || req.IPs[0].PublicIP != "192.0.2.10" {
			t.Errorf("ips = %+v, want a single 192.0.2.10 entry", req.IPs)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(IPPoolDTO{
			ID:              4,
			Name:            req.Name,
			RoutingStrategy: req.RoutingStrategy,
			IPs:             []IPDTO{{ID: 1, PublicIP: "192.0.2.10"}},
		})
	})

	pool, err := client.CreateIPPool(context.Background(), &CreateIPPoolRequest{
		Name:            "Marketing Pool - 12345",
		RoutingStrategy: 0,
		IPs:             []PoolIPDTO{{PublicIP: "192.0.2.10"}},
	})
	if err != nil {
		t.Fatalf("CreateIPPool() error = %v", err)
	}
	if pool.ID != 4 {
		t.Errorf("ID = %d, want 4", pool.ID)
	}
	if len(pool.IPs) != 1 {
		t.Errorf("len(IPs) = %d, want 1", len(pool.IPs))
	}
}

func TestGetIPPool_NotFound(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such pool"})
	})

	_, err := client.GetIPPool(context.Background(), 123)
	if !errors.Is(err, ErrIPPoolNotFound) {
		t.Errorf("GetIPPool() error = %v, want ErrIPPoolNotFound", err)
	}
}
