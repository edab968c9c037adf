package sandbox

import (
	"encoding/json"
	"net/http"
)

type createWebhookRequest struct {
	URL          string `json:"url"`
	Enabled      bool   `json:"enabled"`
	Processed    bool   `json:"processed"`
	Delivered    bool   `json:"delivered"`
	Dropped      bool   `json:"dropped"`
	SoftBounced  bool   `json:"soft_bounced"`
	HardBounced  bool   `json:"hard_bounced"`
	Opened       bool   `json:"opened"`
	Clicked      bool   `json:"clicked"`
	Unsubscribed bool   `json:"unsubscribed"`
	Spam         bool   `json:"spam"`
}

type updateWebhookRequest struct {
	URL          *string `json:"url"`
	Enabled      *bool   `json:"enabled"`
	Processed    *bool   `json:"processed"`
	Delivered    *bool   `json:"delivered"`
	Dropped      *bool   `json:"dropped"`
	SoftBounced  *bool   `json:"soft_bounced"`
	HardBounced  *bool   `json:"hard_bounced"`
	Opened       *bool   `json:"opened"`
	Clicked      *bool   `json:"clicked"`
	Unsubscribed *bool   `json:"unsubscribed"`
	Spam         *bool   `json:"spam"`
}

// listWebhooks handles GET /account/webhooks.
func (s *Server) listWebhooks(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := sortedWebhooks(s.store.webhooks)
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// createWebhook handles POST /account/webhooks. The signing secret is
// generated once and returned on every read, so a restart-free sandbox
// run can verify deliveries end to end.
func (s *Server) createWebhook(w http.ResponseWriter, r *http.Request) {
	var req createWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "the 'url' field is required")
		return
	}

	s.store.mu.Lock()
	id := s.store.allocID()
	now := s.store.now()
	wh := webhook{
		ID:           id,
		URL:          req.URL,
		Enabled:      req.Enabled,
		Secret:       newWebhookSecret(),
		Processed:    req.Processed,
		Delivered:    req.Delivered,
		Dropped:      req.Dropped,
		SoftBounced:  req.SoftBounced,
		HardBounced:  req.HardBounced,
		Opened:       req.Opened,
		Clicked:      req.Clicked,
		Unsubscribed: req.Unsubscribed,
		Spam:         req.Spam,
		Created:      now,
		Updated:      now,
	}
	s.store.webhooks[id] = wh
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, wh)
}

// getWebhook handles GET /account/webhooks/{id}.
func (s *Server) getWebhook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid webhook id")
		return
	}

	s.store.mu.Lock()
	wh, found := s.store.webhooks[id]
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "webhook not found")
		return
	}

	writeJSON(w, http.StatusOK, wh)
}

// updateWebhook handles PUT /account/webhooks/{id}. Only fields present
// in the body change.
func (s *Server) updateWebhook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid webhook id")
		return
	}

	var req updateWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.store.mu.Lock()
	wh, found := s.store.webhooks[id]
	if found {
		applyWebhookUpdate(&wh, &req)
		wh.Updated = s.store.now()
		s.store.webhooks[id] = wh
	}
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "webhook not found")
		return
	}

	writeJSON(w, http.StatusOK, wh)
}

// deleteWebhook handles DELETE /account/webhooks/{id}.
func (s *Server) deleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid webhook id")
		return
	}

	s.store.mu.Lock()
	_, found := s.store.webhooks[id]
	delete(s.store.webhooks, id)
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "webhook not found")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func applyWebhookUpdate(wh *webhook, req *updateWebhookRequest) {
	if req.URL != nil {
		wh.URL = *req.URL
	}
	if req.Enabled != nil {
		wh.Enabled = *req.Enabled
	}
	if req.Processed != nil {
		wh.Processed = *req.Processed
	}
	if req.Delivered != nil {
		wh.Delivered = *req.Delivered
	}
	if req.Dropped != nil {
		wh.Dropped = *req.Dropped
	}
	if req.SoftBounced != nil {
		wh.SoftBounced = *req.SoftBounced
	}
	if req.HardBounced != nil {
		wh.HardBounced = *req.HardBounced
	}
	if req.Opened != nil {
		wh.Opened = *req.Opened
	}
	if req.Clicked != nil {
		wh.Clicked = *req.Clicked
	}
	if req.Unsubscribed != nil {
		wh.Unsubscribed = *req.Unsubscribed
	}
	if req.Spam != nil {
		wh.Spam = *req.Spam
	}
}
