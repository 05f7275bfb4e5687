package security

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the client IP address from the request for rate
// limiting and audit events. X-Forwarded-For and X-Real-IP are only
// consulted when trustProxy is set; otherwise a spoofed header would let a
// client dodge per-IP limits. trustedProxyCount is the number of proxies
// under our control counted from the right of X-Forwarded-For.
func ClientIP(r *http.Request, trustProxy bool, trustedProxyCount int) string {
	if trustProxy {
		if ip := ipFromForwardedFor(r.Header.Get("X-Forwarded-For"), trustedProxyCount); ip != "" {
			return ip
		}
		if xri := r.Header.Get("X-Real-IP"); net.ParseIP(xri) != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ipFromForwardedFor picks the client entry out of an X-Forwarded-For list.
// The header reads "client, proxy1, proxy2, ..."; the rightmost entries are
// the proxies we control, so the client sits trustedProxyCount+1 from the
// end. With fewer entries than that, the leftmost entry is used.
func ipFromForwardedFor(xff string, trustedProxyCount int) string {
	if xff == "" {
		return ""
	}

	ips := strings.Split(xff, ",")

	proxyCount := trustedProxyCount
	if proxyCount == 0 {
		proxyCount = 1
	}

	idx := len(ips) - proxyCount - 1
	if idx < 0 {
		idx = 0
	}

	ip := strings.TrimSpace(ips[idx])
	if net.ParseIP(ip) == nil {
		return ""
	}
	return ip
}
