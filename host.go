// FILE: lixenwraith/emaconfig/host.go
package emaconfig

import "strings"

// ParseHost splits "host:port" at the first colon. Missing parts take
// DefaultHostName and DefaultServiceName.
func ParseHost(s string) (host, service string) {
	h, p, found := strings.Cut(s, ":")
	if !found {
		p = ""
	}
	host, service = h, p
	if host == "" {
		host = DefaultHostName
	}
	if service == "" {
		service = DefaultServiceName
	}
	return host, service
}
