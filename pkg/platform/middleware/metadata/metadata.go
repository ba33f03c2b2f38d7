// Package metadata records the caller's network address on the request context.
package metadata

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKeyClientIP struct{}

// ClientIP stores the caller's address for logging and audit.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithClientIP(r.Context(), ClientIPFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return ip
	}
	return ""
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyClientIP{}, ip)
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then RemoteAddr without its port.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
