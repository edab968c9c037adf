package sandbox

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

type subAccountRequest struct {
	Name string `json:"name"`
}

// listSubAccounts handles GET /account/subaccounts.
func (s *Server) listSubAccounts(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := sortedSubAccounts(s.store.subAccounts)
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// createSubAccount handles POST /account/subaccounts. The response
// carries the generated API key; it is never shown again by the real
// service, so the sandbox keeps it listable instead.
func (s *Server) createSubAccount(w http.ResponseWriter, r *http.Request) {
	var req subAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "the 'name' field is required")
		return
	}

	s.store.mu.Lock()
	id := s.store.allocID()
	sa := subAccount{
		ID:      id,
		Name:    req.Name,
		APIKey:  newSubAccountKey(),
		Created: s.store.now(),
	}
	s.store.subAccounts[id] = sa
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, sa)
}

// getSubAccount handles GET /account/subaccounts/{id}.
func (s *Server) getSubAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid sub-account id")
		return
	}

	s.store.mu.Lock()
	sa, found := s.store.subAccounts[id]
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "sub-account not found")
		return
	}

	writeJSON(w, http.StatusOK, sa)
}

// updateSubAccount handles PUT /account/subaccounts/{id}.
func (s *Server) updateSubAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid sub-account id")
		return
	}

	var req subAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "the 'name' field is required")
		return
	}

	s.store.mu.Lock()
	sa, found := s.store.subAccounts[id]
	if found {
		sa.Name = req.Name
		s.store.subAccounts[id] = sa
	}
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "sub-account not found")
		return
	}

	writeJSON(w, http.StatusOK, sa)
}

// deleteSubAccount handles DELETE /account/subaccounts/{id}.
func (s *Server) deleteSubAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid sub-account id")
		return
	}

	s.store.mu.Lock()
	_, found := s.store.subAccounts[id]
	delete(s.store.subAccounts, id)
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "sub-account not found")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
