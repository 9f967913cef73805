package authn

import (
	"net"
	"net/http"
)

// ClientAddr returns the request's remote host without the port, so that all
// connections of one client share a rate limit key. Forwarded headers are
// ignored since any client can set them.
func ClientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
