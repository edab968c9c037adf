package sandbox

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
)

type createDomainRequest struct {
	Name string `json:"name"`
}

// newDKIMRecord fabricates a plausible DKIM TXT record for a new
// domain.
func newDKIMRecord() *dkimRecord {
	var b [32]byte
	rand.Read(b[:])
	return &dkimRecord{
		Selector:  "sp",
		TextValue: "k=rsa; p=" + base64.StdEncoding.EncodeToString(b[:]),
	}
}

// listDomains handles GET /subaccount/domains. Only the caller's
// domains are visible.
func (s *Server) listDomains(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)

	s.store.mu.Lock()
	out := sortedDomains(s.store.domains, caller.ID)
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// createDomain handles POST /subaccount/domains.
func (s *Server) createDomain(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)

	var req createDomainRequest
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
	d := domain{
		ID:      id,
		Name:    req.Name,
		DKIM:    newDKIMRecord(),
		Created: s.store.now(),
		ownerID: caller.ID,
	}
	s.store.domains[id] = d
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, d)
}

// getDomain handles GET /subaccount/domains/{id}.
func (s *Server) getDomain(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid domain id")
		return
	}

	s.store.mu.Lock()
	d, found := s.store.domains[id]
	s.store.mu.Unlock()
	if !found || d.ownerID != caller.ID {
		writeError(w, r, http.StatusNotFound, "domain not found")
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// verifyDomain handles POST /subaccount/domains/{id}/verify. The
// sandbox has no DNS to probe, so verification always succeeds.
func (s *Server) verifyDomain(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid domain id")
		return
	}

	s.store.mu.Lock()
	d, found := s.store.domains[id]
	if found && d.ownerID == caller.ID {
		d.Verified = true
		s.store.domains[id] = d
	}
	s.store.mu.Unlock()
	if !found || d.ownerID != caller.ID {
		writeError(w, r, http.StatusNotFound, "domain not found")
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// deleteDomain handles DELETE /subaccount/domains/{id}.
func (s *Server) deleteDomain(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid domain id")
		return
	}

	s.store.mu.Lock()
	d, found := s.store.domains[id]
	owned := found && d.ownerID == caller.ID
	if owned {
		delete(s.store.domains, id)
	}
	s.store.mu.Unlock()
	if !owned {
		writeError(w, r, http.StatusNotFound, "domain not found")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
