// File: server/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"log/slog"
	"net/http"
)

// Option customizes a Server at construction time.
type Option func(*Server)

// Middleware augments an http.HandlerFunc, grounded on the api.Handler
// middleware chain in lowlevel/server/handler_chain.go and adapted from
// wrapping api.Handler to wrapping http.HandlerFunc.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// WithLogger overrides the server's structured logger. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMiddleware appends middleware applied, in order, to every handler
// registered on the server's mux.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}
