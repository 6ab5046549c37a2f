package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"questserver/internal/auth"
	"questserver/internal/domain"
)

type registerRequest struct {
	Email    string             `json:"email"`
	Password string             `json:"password"`
	Profile  *domain.NewProfile `json:"profile"`
}

func (a *api) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	info, err := a.authSvc.Register(r.Context(), req.Email, req.Password, req.Profile, clientIP(r), r.UserAgent())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	a.startSession(w, info)
	writeMe(w, http.StatusCreated, info)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *api) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "required", "password": "required"}))
		return
	}

	now := time.Now()
	ip := clientIP(r)
	if !a.loginLimiter.Allow("ip:"+ip, now) || !a.loginLimiter.Allow("login:"+strings.ToLower(req.Email), now) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
		return
	}

	info, err := a.authSvc.Login(r.Context(), req.Email, req.Password, ip, r.UserAgent())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	a.startSession(w, info)
	writeMe(w, http.StatusOK, info)
}

type idTokenRequest struct {
	IDToken string `json:"id_token"`
}

func (a *api) handleAuthLoginGoogle(w http.ResponseWriter, r *http.Request) {
	a.handleAuthLoginExternal(w, r, a.authSvc.LoginWithGoogle)
}

func (a *api) handleAuthLoginApple(w http.ResponseWriter, r *http.Request) {
	a.handleAuthLoginExternal(w, r, a.authSvc.LoginWithApple)
}

type externalLoginFunc func(ctx context.Context, token, ip, userAgent string) (domain.SessionInfo, error)

func (a *api) handleAuthLoginExternal(w http.ResponseWriter, r *http.Request, login externalLoginFunc) {
	var req idTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	req.IDToken = strings.TrimSpace(req.IDToken)
	if req.IDToken == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"id_token": "required"}))
		return
	}

	ip := clientIP(r)
	if !a.loginLimiter.Allow("ip:"+ip, time.Now()) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
		return
	}

	info, err := login(r.Context(), req.IDToken, ip, r.UserAgent())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	a.startSession(w, info)
	writeMe(w, http.StatusOK, info)
}

func (a *api) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok || info.SessionID == "" {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	if err := a.authSvc.Logout(r.Context(), info.SessionID); err != nil {
		a.logger.Warn("logout: revoke session failed", "err", err)
	}
	auth.ClearSessionCookie(w, a.cookieSecure)
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) startSession(w http.ResponseWriter, info domain.SessionInfo) {
	auth.SetSessionCookie(w, a.cookieCodec.Sign(info.SessionID), a.sessionTTL, a.cookieSecure)
}
