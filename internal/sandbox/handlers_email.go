package sandbox

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type sendEmailRequest struct {
	From        emailAddress      `json:"from"`
	To          []recipient       `json:"to"`
	ReplyTo     *emailAddress     `json:"reply_to"`
	Subject     string            `json:"subject"`
	HTMLBody    string            `json:"html_body"`
	TextBody    string            `json:"text_body"`
	TrackOpens  bool              `json:"track_opens"`
	TrackClicks bool              `json:"track_clicks"`
	Headers     map[string]string `json:"headers"`
	Groups      []string          `json:"groups"`
}

type sendReceipt struct {
	MessageID   string    `json:"message_id"`
	To          string    `json:"to"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// sendEmail handles POST /subaccount/email. Every recipient yields one
// receipt and one stored message; sends with groups count as marketing.
func (s *Server) sendEmail(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.From.Email == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "the 'from' field is required")
		return
	}
	if len(req.To) == 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "the 'to' field must contain at least one recipient")
		return
	}

	emailType := "transactional"
	if len(req.Groups) > 0 {
		emailType = "marketing"
	}

	s.store.mu.Lock()
	now := s.store.now()
	day := now.Format("2006-01-02")
	poolName := ""
	if pools := sortedPools(s.store.pools); len(pools) > 0 {
		poolName = pools[0].Name
	}

	receipts := make([]sendReceipt, 0, len(req.To))
	for _, rcpt := range req.To {
		ip := s.store.ips[len(s.store.messages)%len(s.store.ips)]
		id := uuid.NewString()
		to := rcpt
		from := req.From
		s.store.messages[id] = message{
			MessageID:    id,
			AccountID:    accountID,
			SubAccountID: caller.ID,
			IPID:         ip.ID,
			PublicIP:     ip.PublicIP,
			LocalIP:      localIP,
			EmailType:    emailType,
			SubmittedAt:  now,
			From:         &from,
			To:           &to,
			Subject:      req.Subject,
			IPPool:       poolName,
			Attempt:      1,
		}
		s.store.recordSend(day, caller.ID)
		receipts = append(receipts, sendReceipt{
			MessageID:   id,
			To:          rcpt.Email,
			SubmittedAt: now,
		})
	}
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, receipts)
}

// getMessage handles GET /account/messages/{id}.
func (s *Server) getMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.store.mu.Lock()
	msg, found := s.store.messages[id]
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "message not found")
		return
	}

	writeJSON(w, http.StatusOK, msg)
}
