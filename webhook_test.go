package sendpost

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func TestBuildWebhookCreateRequest_Defaults(t *testing.T) {
	req := buildWebhookCreateRequest("https://hooks.example.com/sendpost", nil)

	if req.URL != "https://hooks.example.com/sendpost" {
		t.Errorf("URL = %s, want https://hooks.example.com/sendpost", req.URL)
	}
	if !req.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	// Every event flag defaults on.
	flags := []bool{
		req.Processed, req.Delivered, req.Dropped,
		req.SoftBounced, req.HardBounced, req.Opened,
		req.Clicked, req.Unsubscribed, req.Spam,
	}
	for i, on := range flags {
		if !on {
			t.Errorf("event flag %d = false, want true by default", i)
		}
	}
}

func TestBuildWebhookCreateRequest_NarrowedEvents(t *testing.T) {
	req := buildWebhookCreateRequest("https://hooks.example.com",
		[]WebhookCreateOption{
			WithWebhookEvents(WebhookEventDelivered, WebhookEventHardBounced),
		})

	if !req.Delivered || !req.HardBounced {
		t.Error("selected events should be on")
	}
	if req.Processed || req.Opened || req.Spam {
		t.Error("unselected events should be off")
	}
}

func TestBuildWebhookCreateRequest_Disabled(t *testing.T) {
	req := buildWebhookCreateRequest("https://hooks.example.com",
		[]WebhookCreateOption{WithWebhookDisabled()})

	if req.Enabled {
		t.Error("Enabled = true, want false")
	}
}

func TestBuildWebhookUpdateRequest(t *testing.T) {
	req := buildWebhookUpdateRequest([]WebhookUpdateOption{
		WithUpdateURL("https://hooks.example.com/v2"),
		WithUpdateEvents(WebhookEventSpam),
		WithUpdateEnabled(false),
	})

	if req.URL == nil || *req.URL != "https://hooks.example.com/v2" {
		t.Errorf("URL = %v, want https://hooks.example.com/v2", req.URL)
	}
	if req.Enabled == nil || *req.Enabled {
		t.Errorf("Enabled = %v, want false", req.Enabled)
	}
	if req.Spam == nil || !*req.Spam {
		t.Error("Spam flag should be set true")
	}
	if req.Delivered == nil || *req.Delivered {
		t.Error("unselected event flags should be set false, not omitted")
	}
}

func TestBuildWebhookUpdateRequest_NoEvents(t *testing.T) {
	req := buildWebhookUpdateRequest([]WebhookUpdateOption{
		WithUpdateEnabled(true),
	})

	// Without WithUpdateEvents no event flag is touched.
	if req.Processed != nil || req.Delivered != nil || req.Spam != nil {
		t.Error("event flags should be nil when not updated")
	}
}

func TestWebhook_Events(t *testing.T) {
	hook := &Webhook{Delivered: true, Opened: true, Spam: true}

	got := hook.Events()
	want := []WebhookEventType{WebhookEventDelivered, WebhookEventOpened, WebhookEventSpam}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Events() = %v, want %v", got, want)
	}

	var none Webhook
	if events := none.Events(); len(events) != 0 {
		t.Errorf("Events() on unsubscribed webhook = %v, want none", events)
	}
}

func TestAllWebhookEvents(t *testing.T) {
	events := AllWebhookEvents()
	if len(events) != 9 {
		t.Fatalf("len(AllWebhookEvents()) = %d, want 9", len(events))
	}

	seen := make(map[WebhookEventType]bool)
	for _, e := range events {
		if seen[e] {
			t.Errorf("duplicate event type %q", e)
		}
		seen[e] = true
	}
}

func TestWebhooks_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/account/webhooks" {
			t.Errorf("path = %s, want /account/webhooks", r.URL.Path)
		}
		if r.Header.Get("X-Account-ApiKey") != "acct-key" {
			t.Errorf("X-Account-ApiKey = %s, want acct-key", r.Header.Get("X-Account-ApiKey"))
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["soft_bounced"] != true {
			t.Error("soft_bounced flag not carried in request body")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      3,
			"url":     body["url"],
			"enabled": true,
			"secret":  "whsec_abc",
		})
	})

	hook, err := client.Webhooks().Create(context.Background(), "https://your-webhook-endpoint.com/webhook")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if hook.ID != 3 {
		t.Errorf("ID = %d, want 3", hook.ID)
	}
	if hook.Secret != "whsec_abc" {
		t.Errorf("Secret = %s, want whsec_abc", hook.Secret)
	}
}

func TestWebhooks_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/webhooks" {
			t.Errorf("path = %s, want /account/webhooks", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 3, "url": "https://a.example.com", "enabled": true, "delivered": true},
			{"id": 4, "url": "https://b.example.com", "enabled": false},
		})
	})

	hooks, err := client.Webhooks().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(hooks) != 2 {
		t.Fatalf("len(hooks) = %d, want 2", len(hooks))
	}
	if !hooks[0].Delivered {
		t.Error("hooks[0].Delivered = false, want true")
	}
	if hooks[1].Enabled {
		t.Error("hooks[1].Enabled = true, want false")
	}
}

func TestWebhooks_Get_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "webhook not found"})
	})

	_, err := client.Webhooks().Get(context.Background(), 99)
	if !errors.Is(err, ErrWebhookNotFound) {
		t.Errorf("Get() error = %v, want ErrWebhookNotFound", err)
	}
}

func TestWebhooks_Delete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		if r.URL.Path != "/account/webhooks/3" {
			t.Errorf("path = %s, want /account/webhooks/3", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Webhooks().Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
