// Package netutil holds small networking helpers for the controller.
package netutil

import (
	"fmt"
	"net"
)

// PickBindAddr returns the preferred address when it can be listened on.
// When it is busy and fallback is allowed, the first free candidate wins.
func PickBindAddr(preferred string, candidates []string, autoFallback bool) (string, error) {
	if preferred != "" {
		if addrFree(preferred) {
			return preferred, nil
		}
		if !autoFallback {
			return "", fmt.Errorf("bind address in use: %s", preferred)
		}
	}

	for _, addr := range candidates {
		if addr == preferred {
			continue
		}
		if addrFree(addr) {
			return addr, nil
		}
	}
	return "", fmt.Errorf("no free bind address among %d candidates", len(candidates))
}

func addrFree(addr string) bool {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}
