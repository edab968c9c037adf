package sandbox

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Auth headers, matching what the client library sends per scope.
const (
	headerAccountKey    = "X-Account-ApiKey"
	headerSubAccountKey = "X-SubAccount-ApiKey"
)

type contextKey int

const subAccountContextKey contextKey = iota

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)

	r.Route("/account", func(r chi.Router) {
		r.Use(s.requireAccountKey)

		r.Route("/subaccounts", func(r chi.Router) {
			r.Get("/", s.listSubAccounts)
			r.Post("/", s.createSubAccount)
			r.Get("/{id}", s.getSubAccount)
			r.Put("/{id}", s.updateSubAccount)
			r.Delete("/{id}", s.deleteSubAccount)
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Get("/", s.listWebhooks)
			r.Post("/", s.createWebhook)
			r.Get("/{id}", s.getWebhook)
			r.Put("/{id}", s.updateWebhook)
			r.Delete("/{id}", s.deleteWebhook)
		})

		r.Get("/messages/{id}", s.getMessage)
		r.Get("/stat", s.getAccountStats)
		r.Get("/ips", s.listIPs)

		r.Route("/ippools", func(r chi.Router) {
			r.Get("/", s.listIPPools)
			r.Post("/", s.createIPPool)
			r.Get("/{id}", s.getIPPool)
			r.Put("/{id}", s.updateIPPool)
			r.Delete("/{id}", s.deleteIPPool)
		})
	})

	r.Route("/subaccount", func(r chi.Router) {
		r.Use(s.requireSubAccountKey)

		r.Route("/domains", func(r chi.Router) {
			r.Get("/", s.listDomains)
			r.Post("/", s.createDomain)
			r.Get("/{id}", s.getDomain)
			r.Delete("/{id}", s.deleteDomain)
			r.Post("/{id}/verify", s.verifyDomain)
		})

		r.Post("/email", s.sendEmail)
		r.Get("/stat", s.getSubAccountStats)
		r.Get("/stat/aggregate", s.getSubAccountAggregateStats)
	})

	return r
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// requireAccountKey gates the account scope. Any non-empty key is
// accepted; the sandbox simulates a single account.
func (s *Server) requireAccountKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headerAccountKey) == "" {
			writeError(w, r, http.StatusUnauthorized, "missing account API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireSubAccountKey gates the sub-account scope. The key must belong
// to a stored sub-account, whose record rides the request context.
func (s *Server) requireSubAccountKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(headerSubAccountKey)
		if key == "" {
			writeError(w, r, http.StatusUnauthorized, "missing sub-account API key")
			return
		}
		sa, ok := s.store.findSubAccountByKey(key)
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unknown sub-account API key")
			return
		}
		ctx := context.WithValue(r.Context(), subAccountContextKey, sa)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerSubAccount returns the sub-account resolved by the auth
// middleware.
func callerSubAccount(r *http.Request) subAccount {
	sa, _ := r.Context().Value(subAccountContextKey).(subAccount)
	return sa
}
