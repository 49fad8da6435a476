package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/logger"
)

// proxySet holds the reverse proxies allowed to report a client address
// through X-Forwarded-For or X-Real-IP.
type proxySet []*net.IPNet

// newProxySet parses IPs and CIDR ranges. Invalid entries are skipped.
func newProxySet(entries []string) proxySet {
	var set proxySet
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if !strings.Contains(e, "/") {
			if ip := net.ParseIP(e); ip != nil {
				bits := 32
				if ip.To4() == nil {
					bits = 128
				}
				set = append(set, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
				continue
			}
		}
		_, network, err := net.ParseCIDR(e)
		if err != nil {
			logger.Warning("Ignoring invalid trusted proxy", "entry", e)
			continue
		}
		set = append(set, network)
	}
	return set
}

func (p proxySet) contains(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// getRealIP extracts the client IP. Proxy headers are only believed when
// the connection comes from a trusted proxy; X-Forwarded-For is read from
// the right, skipping hops that are themselves trusted proxies.
func getRealIP(r *http.Request, proxies proxySet) string {
	peer := extractIP(r.RemoteAddr)
	if !proxies.contains(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// "client, proxy1, proxy2"
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !proxies.contains(hop) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}
