// File: server/handlers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/momentics/maas/api"
	"github.com/momentics/maas/internal/telemetry"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus(), api.ErrorResponse{Error: apiErr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
}

// handleAllocate implements POST /allocate.
func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req api.AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, api.NewError(api.ErrCodeInvalidRequest, "malformed request body"))
		return
	}

	slb, err := s.allocator.Allocate(req.SizeBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.newIdentifier()
	if err != nil {
		s.allocator.Free(slb)
		writeError(w, api.NewError(api.ErrCodeInternal, "failed to generate allocation identifier"))
		return
	}

	if err := s.registry.Insert(id, slb); err != nil {
		s.allocator.Free(slb)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.AllocateResponse{
		ID:              id,
		SizeBytes:       req.SizeBytes,
		ActualSizeBytes: slb.Width,
		SizeMB:          float64(slb.Width) / (1024 * 1024),
		AgeSeconds:      slb.AgeSeconds(),
	})
}

// newIdentifier generates an identifier, regenerating once on the
// astronomically unlikely event of a registry collision.
func (s *Server) newIdentifier() (api.Identifier, error) {
	for attempt := 0; attempt < 2; attempt++ {
		id, err := api.NewIdentifier()
		if err != nil {
			return api.Identifier{}, err
		}
		if _, exists := s.registry.Lookup(id); !exists {
			return id, nil
		}
	}
	return api.Identifier{}, errors.New("could not generate a unique allocation identifier")
}

// handleDeallocate implements DELETE /allocate/{id}.
func (s *Server) handleDeallocate(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseIdentifier(r.PathValue("id"))
	if err != nil {
		writeError(w, api.NewError(api.ErrCodeInvalidRequest, "malformed allocation identifier"))
		return
	}

	slb, err := s.registry.Remove(id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.allocator.Free(slb)
	w.WriteHeader(http.StatusOK)
}

// handleHealth implements GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:    "ok",
		Version:   version,
		Timestamp: time.Now().Unix(),
		Memory:    telemetry.Stats(s.allocator, s.registry),
	})
}

// handleStats implements GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, telemetry.Stats(s.allocator, s.registry))
}

// handleDebug implements GET /debug: the merged stats-plus-probes dump
// from api.Control, independent of the Prometheus exposition path.
func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.control.Stats())
}

const version = "1.0.0"
