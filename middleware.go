package tokenmint

import (
	"context"
	"net/http"

	"github.com/quayside/tokenmint/security"
)

type contextKey string

const tokensKey contextKey = "tokens"

// MiddlewareConfig configures the HTTP middleware built around a Generator.
type MiddlewareConfig struct {
	// RateLimiter throttles token issuance per client IP (optional).
	RateLimiter *security.RateLimiter

	// TrustProxy enables X-Forwarded-For parsing for client IP extraction.
	// Only enable behind a trusted reverse proxy.
	TrustProxy bool

	// TrustedProxyCount is the number of trusted proxies in front of the
	// service, used to pick the right X-Forwarded-For entry.
	TrustedProxyCount int
}

// Middleware returns an http.Handler middleware that generates the
// context's tokens for each request, writes them to the configured
// response headers, and stashes the outputs in the request context for
// downstream handlers (see TokensFromContext).
//
// Tokens whose spec has no header are still generated (and cached) but
// only reachable through the request context. A rate-limited request
// passes through untouched: throttling withholds fresh tokens, it does
// not block the request itself.
func (g *Generator) Middleware(ec *Context, cfg MiddlewareConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.RateLimiter != nil {
				ip := security.ClientIP(r, cfg.TrustProxy, cfg.TrustedProxyCount)
				if !cfg.RateLimiter.Allow(ip) {
					g.logger.Warn("token issuance rate limit exceeded", "ip", ip)
					g.metrics.RecordRateLimitExceeded(r.Context())
					g.auditor.LogRateLimitExceeded(ip, r.URL.Path)
					next.ServeHTTP(w, r)
					return
				}
			}

			outputs := g.Generate(r.Context(), ec, r.URL.Path)
			for _, out := range outputs {
				if out.Err == nil && out.Header != "" {
					w.Header().Set(out.Header, out.Value)
				}
			}

			ctx := context.WithValue(r.Context(), tokensKey, outputs)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokensFromContext retrieves the outputs generated by Middleware for the
// current request. ok is false when the middleware did not run (or the
// request was rate limited).
func TokensFromContext(ctx context.Context) ([]Output, bool) {
	outputs, ok := ctx.Value(tokensKey).([]Output)
	return outputs, ok
}
