//go:build !linux

// File: server/listener_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import "net"

func newTunedListener(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}
