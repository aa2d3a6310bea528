// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime debug introspection for the MAS server: named probes any
// package can register, dumped together by the /debug diagnostics path
// independent of the Prometheus exposition endpoint.
package control
