package authhandlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	authdomain "github.com/sh4ner/streamerpulse/app/modules/auth/domain"
	authjwt "github.com/sh4ner/streamerpulse/app/modules/auth/infrastructure/jwt"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle IP entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is an IP-based rate limiter that prunes stale entries inline.
type IPRateLimiter struct {
	ips map[string]*ipEntry
	mu  sync.Mutex
	r   rate.Limit
	b   int
	now func() time.Time
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipEntry),
		r:   r,
		b:   b,
		now: time.Now,
	}
}

// NewWindowLimiter allows n requests per window per IP, refilling evenly across the window.
func NewWindowLimiter(n int, window time.Duration) *IPRateLimiter {
	return NewIPRateLimiter(rate.Every(window/time.Duration(n)), n)
}

// GetLimiter returns a rate.Limiter for the given IP, pruning stale entries when the
// map exceeds cleanupThreshold.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if len(i.ips) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range i.ips {
			if e.lastSeen.Before(cutoff) {
				delete(i.ips, k)
			}
		}
	}

	e, exists := i.ips[ip]
	if !exists {
		e = &ipEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = e
	}
	e.lastSeen = now

	return e.limiter
}

// Len reports how many IPs are tracked.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// RateLimitMiddleware returns a middleware that rate limits requests based on IP.
func RateLimitMiddleware(limiter *IPRateLimiter, message string) func(http.Handler) http.Handler {
	if message == "" {
		message = http.StatusText(http.StatusTooManyRequests)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(clientIP(r)).Allow() {
				httpjson.Message(w, http.StatusTooManyRequests, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// CORSMiddleware returns a middleware that sets CORS headers for the configured origins.
// When allowedOrigins is empty, no CORS headers are added and the middleware is a no-op.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type claimsKey struct{}

// ClaimsFromContext returns the verified claims stored by AdminMiddleware.
func ClaimsFromContext(ctx context.Context) (*authdomain.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*authdomain.Claims)
	return c, ok
}

// AdminMiddleware requires an "Authorization: Bearer <jwt>" header carrying the admin role.
func AdminMiddleware(provider authjwt.Provider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httpjson.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := provider.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "Rejected admin token", "path", r.URL.Path, "error", err)
				httpjson.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !claims.IsAdmin() {
				logger.WarnContext(ctx, "Non-admin token on admin route", "path", r.URL.Path, "subject", claims.Subject)
				httpjson.Message(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, claimsKey{}, claims)))
		})
	}
}
