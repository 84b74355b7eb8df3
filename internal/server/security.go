package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/logger"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/metrics"
)

// authMiddleware rejects API requests that do not carry the configured key in
// the X-API-Key header. An empty configured key disables authentication
// entirely, matching the config contract. Operational routes (health,
// readiness, metrics, version) are always public.
func authMiddleware(apiKey string, trustedProxies []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || publicRoutes[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)

			// Constant-time compare keeps key content out of the timing
			// side channel.
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				metrics.AuthFailuresTotal.Inc()

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"client_ip", clientIP(r, trustedProxies))

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter caps the number of requests one client IP may make per fixed
// window. A single evaluation request fans out into a large enumeration, so
// a runaway client saturates CPU long before it saturates bandwidth.
type rateLimiter struct {
	mu        sync.Mutex
	byIP      map[string]int
	windowEnd time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		byIP:      make(map[string]int),
		windowEnd: time.Now().Add(rateLimitWindow),
	}
}

// take records one request from ip and returns whether it fits the window
// budget, along with the running count for that ip.
func (l *rateLimiter) take(ip string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now := time.Now(); now.After(l.windowEnd) {
		l.byIP = make(map[string]int)
		l.windowEnd = now.Add(rateLimitWindow)
	}
	l.byIP[ip]++
	count := l.byIP[ip]
	return count <= rateLimitMaxRequests, count
}

// rateLimitMiddleware answers 429 to clients over their window budget.
// Operational routes are exempt so probes and scrapes cannot be starved out
// by a noisy client behind the same proxy.
func rateLimitMiddleware(trustedProxies []string, limiter *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicRoutes[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, trustedProxies)
			ok, count := limiter.take(ip)
			if !ok {
				metrics.RateLimitedTotal.Inc()

				// Log only the first rejection per window per client.
				if count == rateLimitMaxRequests+1 {
					log := logger.FromContext(r.Context())
					log.Warn(LogMsgRateLimited,
						"client_ip", ip,
						"path", r.URL.Path)
				}

				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestSizeLimit caps the request body size. Evaluation payloads are a few
// kilobytes of artifact and scoring JSON; anything larger is malformed.
func requestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// securityHeaders sets the standard hardening headers on every response.
func securityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client address for auth logging and rate limiting.
// X-Forwarded-For is honored only when the direct peer is a trusted proxy,
// and then only its rightmost entry, since that is the hop the proxy itself
// vouches for.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}
