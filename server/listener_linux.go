//go:build linux

// File: server/listener_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Sets TCP_NODELAY on the listening socket, grounded on the
// unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1) call in
// internal/transport/transport_linux.go, adapted from a raw socket fd to
// a net.ListenConfig.Control callback, which runs once for the listener
// socket rather than for each accepted connection.

package server

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

func newTunedListener(addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	return lc.Listen(context.Background(), "tcp", addr)
}
