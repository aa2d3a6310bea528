// File: client/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import "log/slog"

// Option customizes a Client at construction time.
type Option func(*Client)

// WithLogger overrides the client's structured logger. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
