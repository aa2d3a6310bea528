// File: cmd/maas-client-demo/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A minimal driver exercising client.Client against a running MAS
// server: allocate, hold briefly, free, repeat. Grounded on the
// flag-parsing CLI pattern in examples/stest/client/main.go.

package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momentics/maas/client"
)

func main() {
	baseURL := flag.String("url", "http://localhost:9100", "MAS server base URL")
	sizeBytes := flag.Int64("size", 4096, "bytes to request per allocation")
	interval := flag.Duration("interval", time.Second, "delay between allocate/free cycles")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	c := client.New(&client.Config{
		BaseURL:             *baseURL,
		RequestTimeout:      5 * time.Second,
		HealthCheckInterval: 10 * time.Second,
		FallbackEnabled:     true,
		HealthLogCapacity:   32,
	}, client.WithLogger(logger))
	defer c.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			logger.Info("shutting down")
			return
		case <-ticker.C:
			buf, err := c.Allocate(*sizeBytes)
			if err != nil {
				logger.Error("allocate failed", "error", err)
				continue
			}
			logger.Info("allocated", "bytes", len(buf), "stats", c.Stats())

			if err := c.Free(buf); err != nil {
				logger.Error("free failed", "error", err)
			}
		}
	}
}
