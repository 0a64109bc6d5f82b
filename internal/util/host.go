package util

import (
	"net"
	"strings"
)

// loopbackHosts are the host values exempt from HTTPS enforcement
// (RFC 8252 Section 8.3 permits plain HTTP for loopback redirects).
var loopbackHosts = map[string]bool{
	"127.0.0.1": true,
	"localhost": true,
	"::1":       true,
	"[::1]":     true,
}

// IsLoopbackHost reports whether a Host header value refers to the loopback
// interface. The comparison is case-insensitive and ignores any port.
func IsLoopbackHost(host string) bool {
	return loopbackHosts[strings.ToLower(StripPort(host))]
}

// StripPort removes a trailing port from a Host header value, preserving
// IPv6 bracket notation handling: "[::1]:8080" becomes "::1", a bare "::1"
// is returned unchanged.
func StripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
