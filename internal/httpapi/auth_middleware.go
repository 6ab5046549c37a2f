package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"questserver/internal/auth"
	"questserver/internal/domain"
)

type authCtxKey int

const authSessionKey authCtxKey = iota

func (a *api) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(auth.SessionCookieName)
		if err != nil || c.Value == "" {
			WriteDomainError(w, domain.ErrUnauthorized)
			return
		}

		sessID, ok := a.cookieCodec.Verify(c.Value)
		if !ok {
			WriteDomainError(w, domain.ErrUnauthorized)
			return
		}

		info, err := a.authSvc.SessionInfo(r.Context(), sessID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), authSessionKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// CurrentSession returns the caller resolved by requireAuth.
func CurrentSession(ctx context.Context) (domain.SessionInfo, bool) {
	info, ok := ctx.Value(authSessionKey).(domain.SessionInfo)
	return info, ok
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
