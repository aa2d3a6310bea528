// File: client/transport.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// transport is the thin HTTP client talking to a MAS server, grounded
// directly on Connect/Allocate/Deallocate in
// original_source/prometheus/tsdb/maas/client.go, adapted from that
// file's string allocation IDs to the wire api.Identifier type.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/momentics/maas/api"
)

type transport struct {
	baseURL    string
	httpClient *http.Client
}

func newTransport(baseURL string, timeout time.Duration) *transport {
	return &transport{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// checkHealth reports whether the server answers GET /health with 200.
func (t *transport) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check status %d", api.ErrTransportFailure, resp.StatusCode)
	}
	return nil
}

// allocate issues POST /allocate for n bytes.
func (t *transport) allocate(ctx context.Context, n int64) (api.AllocateResponse, error) {
	body, err := json.Marshal(api.AllocateRequest{SizeBytes: n})
	if err != nil {
		return api.AllocateResponse{}, fmt.Errorf("%w: %v", api.ErrDecodeFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/allocate", bytes.NewReader(body))
	if err != nil {
		return api.AllocateResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return api.AllocateResponse{}, fmt.Errorf("%w: %v", api.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return api.AllocateResponse{}, decodeServerError(resp)
	}

	var out api.AllocateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return api.AllocateResponse{}, fmt.Errorf("%w: %v", api.ErrDecodeFailure, err)
	}
	return out, nil
}

// deallocate issues DELETE /allocate/{id}. A 404 is treated as success:
// the allocation is already gone, which is the outcome the caller wants.
func (t *transport) deallocate(ctx context.Context, id api.Identifier) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, t.baseURL+"/allocate/"+id.String(), nil)
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return decodeServerError(resp)
	}
	return nil
}

func decodeServerError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("mas server: %s (status %d)", errResp.Error, resp.StatusCode)
	}
	return fmt.Errorf("mas server: status %d", resp.StatusCode)
}
