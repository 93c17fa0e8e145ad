package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/utils"
	"github.com/teambitewolf/news-hole/internal/utils/ratelimit"
)

// RateLimit is middleware that limits the rate of requests per client IP
// within category. Rejected requests get 429 with a Retry-After header.
// Proxy headers are only honored for peers in proxies.
func RateLimit(store *ratelimit.Store, category string, proxies *TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := proxies.ClientIP(r)
			limiter := store.GetLimiter(clientIP, category)

			if !limiter.Allow() {
				retryAfter := int(limiter.RetryAfter().Seconds() + 0.999)
				if retryAfter < 1 {
					retryAfter = 1
				}

				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("category", category).
					Msg("Rate limit exceeded")

				w.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				utils.Error(w, http.StatusTooManyRequests, constants.CodeRateLimited, constants.MsgRateLimited, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			w.Header().Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			w.Header().Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)
			w.Header().Set(constants.HeaderCacheControl, constants.CacheControlNoStore)

			next.ServeHTTP(w, r)
		})
	}
}

// TrustedProxies is the set of peers allowed to report the client address
// through X-Forwarded-For or X-Real-IP. A nil or empty set trusts no one.
type TrustedProxies struct {
	nets []*net.IPNet
}

// NewTrustedProxies parses a list of CIDR ranges or single IP addresses
func NewTrustedProxies(entries []string) (*TrustedProxies, error) {
	tp := &TrustedProxies{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy address: %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 8 * net.IPv4len
			}
			tp.nets = append(tp.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy range %q: %w", entry, err)
		}
		tp.nets = append(tp.nets, ipNet)
	}
	return tp, nil
}

// Contains reports whether addr belongs to a trusted proxy
func (tp *TrustedProxies) Contains(addr string) bool {
	if tp == nil {
		return false
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range tp.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP extracts the client IP address from the request. The direct peer
// is used unless it is a trusted proxy. Behind trusted proxies the
// X-Forwarded-For chain is walked from the right and the first hop that is
// not itself a trusted proxy wins.
func (tp *TrustedProxies) ClientIP(r *http.Request) string {
	peer := remoteIP(r)
	if !tp.Contains(peer) {
		return peer
	}

	if xForwardedFor := r.Header.Get(constants.HeaderXForwardedFor); xForwardedFor != "" {
		hops := strings.Split(xForwardedFor, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if net.ParseIP(hop) == nil {
				// Anything left of a malformed hop cannot be attributed
				return peer
			}
			if !tp.Contains(hop) {
				return hop
			}
		}
		return strings.TrimSpace(hops[0])
	}

	if xRealIP := strings.TrimSpace(r.Header.Get(constants.HeaderXRealIP)); net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	return peer
}

// remoteIP returns the host part of the connection's remote address
func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// isExemptedPath returns true for paths that are never rate limited.
func isExemptedPath(path string) bool {
	return strings.HasPrefix(path, constants.HealthPath) || strings.HasPrefix(path, constants.VersionPath)
}
