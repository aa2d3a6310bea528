// File: cmd/maas-server/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CLI entrypoint for the MAS server, grounded on the flag-parsing and
// signal-driven shutdown pattern in
// examples/stest/server/main.go, adapted from that file's
// connection-tracking shutdown to a context-cancellation one matching
// server.Server.Run.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/momentics/maas/server"
)

func main() {
	addr := flag.String("addr", "", "listen address, overrides the config file's ListenAddr")
	configPath := flag.String("config", "", "path to a JSON server config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := server.DefaultConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, cfg); err != nil {
			logger.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	s, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		logger.Error("failed to construct server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string, cfg *server.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(cfg)
}
