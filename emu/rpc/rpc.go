// Package rpc exposes emulator controls over net/rpc, so that a running
// emulator can be driven by another process, such as a test harness.
package rpc

import (
	"net"

	"nescore/emu/log"
)

var modRPC = log.NewModule("rpc")

// UnusedPort returns a free TCP port on localhost.
func UnusedPort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	return port, l.Close()
}
