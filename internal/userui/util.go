package userui

import (
	"context"
	"net"
	"net/http"
	"strings"

	"questserver/internal/domain"
)

func withSession(ctx context.Context, info domain.SessionInfo) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, info)
}

func sessionFrom(ctx context.Context) domain.SessionInfo {
	info, _ := ctx.Value(sessionCtxKey{}).(domain.SessionInfo)
	return info
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
