// Package sandbox is an in-memory stand-in for the SendPost API. It
// implements every endpoint the client library calls, with just enough
// behavior to run the full espflow workflow offline: created
// sub-accounts get working keys, sends return receipts and resolvable
// message ids, and the stats endpoints derive counters from the sends
// the sandbox itself accepted.
//
// State lives in process memory and is lost on exit. Handler() exposes
// the router so tests can mount the sandbox on an httptest.Server.
package sandbox

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server is one sandbox instance with its own isolated state.
type Server struct {
	store  *memoryStore
	logger *slog.Logger
	router chi.Router
	seed   *Seed
	now    func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default JSON logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithSeed preloads the store before the first request.
func WithSeed(seed *Seed) Option {
	return func(s *Server) {
		s.seed = seed
	}
}

// WithClock pins the sandbox clock. Timestamps and stat dates derive
// from it.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New builds a sandbox with two IPs pre-allocated and any seed data
// applied.
func New(opts ...Option) *Server {
	s := &Server{
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = newMemoryStore(s.now)
	if s.seed != nil {
		s.store.applySeed(s.seed)
	}
	s.router = s.routes()
	return s
}

// Handler returns the sandbox's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
