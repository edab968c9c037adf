// Command sendpost-sandbox serves an in-memory stand-in for the SendPost
// API. Point the client at it with WithBaseURL to run the full workflow,
// examples, or integration tests without touching the real service.
//
// State lives in memory and resets on restart. Use -seed to preload
// sub-accounts, IPs, and webhooks from a YAML file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sendpost/sendpost-go/internal/sandbox"
)

var (
	port     int
	seedFile string
	verbose  bool
)

func init() {
	flag.IntVar(&port, "port", 8402, "HTTP listen port")
	flag.StringVar(&seedFile, "seed", "", "path to a YAML seed file")
	flag.BoolVar(&verbose, "verbose", false, "log at debug level")
	flag.Parse()
}

func main() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	opts := []sandbox.Option{sandbox.WithLogger(logger)}
	if seedFile != "" {
		seed, err := sandbox.LoadSeed(seedFile)
		if err != nil {
			logger.Error("failed to load seed file", "err", err)
			os.Exit(1)
		}
		opts = append(opts, sandbox.WithSeed(seed))
		logger.Info("loaded seed data", "file", seedFile)
	}

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      sandbox.New(opts...).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting sandbox", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down sandbox")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
}
