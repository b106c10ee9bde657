// Package netaddr parses the listen addresses accepted by the daemon and
// the client: "host:port" for TCP, "unix:///path" or "/path" for a unix
// socket.
package netaddr

import (
	"net"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const unixScheme = "unix://"

// Parse splits addr into a network and an address suitable for net.Listen
// and net.Dial.
func Parse(addr string) (network string, address string, err error) {
	addr = strings.TrimSpace(addr)
	switch {
	case addr == "":
		return "", "", pkgerrors.New("empty address")
	case strings.HasPrefix(addr, unixScheme):
		path := strings.TrimPrefix(addr, unixScheme)
		if path == "" {
			return "", "", pkgerrors.Errorf("missing socket path in %q", addr)
		}
		return "unix", path, nil
	case strings.HasPrefix(addr, "/"):
		return "unix", addr, nil
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", "", pkgerrors.Wrapf(err, "invalid tcp address %q", addr)
	}
	return "tcp", addr, nil
}
