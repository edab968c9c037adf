package sandbox

import (
	"encoding/json"
	"net/http"
)

type poolIPRef struct {
	PublicIP string `json:"public_ip"`
}

type createIPPoolRequest struct {
	Name            string      `json:"name"`
	RoutingStrategy int         `json:"routing_strategy"`
	IPs             []poolIPRef `json:"ips"`
}

type updateIPPoolRequest struct {
	Name            *string     `json:"name"`
	RoutingStrategy *int        `json:"routing_strategy"`
	IPs             []poolIPRef `json:"ips"`
}

// listIPs handles GET /account/ips.
func (s *Server) listIPs(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := make([]ipEntry, len(s.store.ips))
	copy(out, s.store.ips)
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// resolvePoolIPs maps public addresses to stored IPs. Callers must hold
// the store lock.
func (st *memoryStore) resolvePoolIPs(refs []poolIPRef) ([]ipEntry, string) {
	resolved := make([]ipEntry, 0, len(refs))
	for _, ref := range refs {
		found := false
		for _, ip := range st.ips {
			if ip.PublicIP == ref.PublicIP {
				resolved = append(resolved, ip)
				found = true
				break
			}
		}
		if !found {
			return nil, ref.PublicIP
		}
	}
	return resolved, ""
}

// listIPPools handles GET /account/ippools.
func (s *Server) listIPPools(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	out := sortedPools(s.store.pools)
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// createIPPool handles POST /account/ippools. Every referenced IP must
// already be allocated to the account.
func (s *Server) createIPPool(w http.ResponseWriter, r *http.Request) {
	var req createIPPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "the 'name' field is required")
		return
	}

	s.store.mu.Lock()
	resolved, missing := s.store.resolvePoolIPs(req.IPs)
	if missing != "" {
		s.store.mu.Unlock()
		writeError(w, r, http.StatusUnprocessableEntity, "unknown IP "+missing)
		return
	}
	id := s.store.allocID()
	pool := ipPool{
		ID:              id,
		Name:            req.Name,
		RoutingStrategy: req.RoutingStrategy,
		IPs:             resolved,
	}
	s.store.pools[id] = pool
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, pool)
}

// getIPPool handles GET /account/ippools/{id}.
func (s *Server) getIPPool(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid IP pool id")
		return
	}

	s.store.mu.Lock()
	pool, found := s.store.pools[id]
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "IP pool not found")
		return
	}

	writeJSON(w, http.StatusOK, pool)
}

// updateIPPool handles PUT /account/ippools/{id}. Omitted fields keep
// their values; a present ips list replaces the membership wholesale.
func (s *Server) updateIPPool(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid IP pool id")
		return
	}

	var req updateIPPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.store.mu.Lock()
	pool, found := s.store.pools[id]
	if !found {
		s.store.mu.Unlock()
		writeError(w, r, http.StatusNotFound, "IP pool not found")
		return
	}
	if req.Name != nil {
		pool.Name = *req.Name
	}
	if req.RoutingStrategy != nil {
		pool.RoutingStrategy = *req.RoutingStrategy
	}
	if req.IPs != nil {
		resolved, missing := s.store.resolvePoolIPs(req.IPs)
		if missing != "" {
			s.store.mu.Unlock()
			writeError(w, r, http.StatusUnprocessableEntity, "unknown IP "+missing)
			return
		}
		pool.IPs = resolved
	}
	s.store.pools[id] = pool
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, pool)
}

// deleteIPPool handles DELETE /account/ippools/{id}.
func (s *Server) deleteIPPool(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid IP pool id")
		return
	}

	s.store.mu.Lock()
	_, found := s.store.pools[id]
	delete(s.store.pools, id)
	s.store.mu.Unlock()
	if !found {
		writeError(w, r, http.StatusNotFound, "IP pool not found")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
