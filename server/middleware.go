// File: server/middleware.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// chain applies middleware in order, first in the slice outermost,
// adapted from NewHandlerChain in lowlevel/server/handler_chain.go.

package server

import (
	"net/http"
	"time"
)

func chain(base http.HandlerFunc, mw ...Middleware) http.HandlerFunc {
	h := base
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// loggingMiddleware records method, path, status, and latency for every
// request through the server's logger.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency", time.Since(start),
		)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
