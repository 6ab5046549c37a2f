package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"questserver/internal/auth"
	"questserver/internal/domain"
)

type AccountsStore interface {
	CreateAccount(ctx context.Context, email, passwordHash string, p *domain.NewProfile) (domain.Account, *domain.Profile, error)
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error)
	GetAccountByExternal(ctx context.Context, provider, providerID string) (domain.Account, error)
	CreateAccountWithExternal(ctx context.Context, provider, providerID, email string) (domain.Account, error)
	LinkExternalAccount(ctx context.Context, accountID, provider, providerID, email string) error
	SetLastLogin(ctx context.Context, accountID string, when time.Time) error
	SetPasswordHash(ctx context.Context, accountID, passwordHash string) error
}

type SessionsStore interface {
	CreateSession(ctx context.Context, accountID, profileID string, expiresAt time.Time, ip, userAgent string) (string, error)
	GetSession(ctx context.Context, sessionID string) (domain.Session, error)
	RevokeSession(ctx context.Context, sessionID string, when time.Time) error
}

type ProfileLookup interface {
	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)
	GetDefaultProfile(ctx context.Context, accountID string) (domain.Profile, error)
}

type AuthService struct {
	Accounts   AccountsStore
	Sessions   SessionsStore
	Profiles   ProfileLookup
	SessionTTL time.Duration
	Now        func() time.Time

	GoogleClientID      string
	AppleServiceID      string
	VerifyGoogleIDToken auth.IDTokenVerifier
	VerifyAppleIDToken  auth.IDTokenVerifier
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Register creates an account, optionally with its first profile, and opens
// a session acting as that profile.
func (s *AuthService) Register(ctx context.Context, email, password string, profile *domain.NewProfile, ip, userAgent string) (domain.SessionInfo, error) {
	email = normalizeEmail(email)

	fields := map[string]string{}
	if !validEmail(email) {
		fields["email"] = "must be a valid email address"
	}
	if len(password) < auth.MinPasswordLength {
		fields["password"] = "must be at least 12 characters"
	}
	if profile != nil {
		prepared, err := prepareNewProfile(*profile)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for k, v := range verr.Fields {
				fields[k] = v
			}
		}
		profile = &prepared
	}
	if len(fields) > 0 {
		return domain.SessionInfo{}, domain.NewValidationError(fields)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.SessionInfo{}, err
	}

	a, p, err := s.Accounts.CreateAccount(ctx, email, hash, profile)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	return s.openSession(ctx, a, p, ip, userAgent)
}

func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (domain.SessionInfo, error) {
	a, err := s.Accounts.GetAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessionInfo{}, domain.ErrInvalidCredentials
		}
		return domain.SessionInfo{}, err
	}
	if a.Status == domain.AccountStatusDisabled {
		return domain.SessionInfo{}, domain.ErrAccountDisabled
	}
	if a.PasswordHash == "" {
		// Accounts created through an external provider have no password.
		return domain.SessionInfo{}, domain.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(a.PasswordHash, password)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	if !ok {
		return domain.SessionInfo{}, domain.ErrInvalidCredentials
	}
	if auth.NeedsRehash(a.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			_ = s.Accounts.SetPasswordHash(ctx, a.ID, hash)
		}
	}

	return s.loginAccount(ctx, a.Account, ip, userAgent)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, token, ip, userAgent string) (domain.SessionInfo, error) {
	return s.loginExternal(ctx, s.VerifyGoogleIDToken, token, s.GoogleClientID, ip, userAgent)
}

func (s *AuthService) LoginWithApple(ctx context.Context, token, ip, userAgent string) (domain.SessionInfo, error) {
	return s.loginExternal(ctx, s.VerifyAppleIDToken, token, s.AppleServiceID, ip, userAgent)
}

func (s *AuthService) loginExternal(ctx context.Context, verify auth.IDTokenVerifier, token, audience, ip, userAgent string) (domain.SessionInfo, error) {
	if verify == nil || audience == "" {
		return domain.SessionInfo{}, domain.ErrForbidden
	}
	id, err := verify(ctx, token, audience)
	if err != nil {
		return domain.SessionInfo{}, domain.ErrUnauthorized
	}

	a, err := s.Accounts.GetAccountByExternal(ctx, id.Provider, id.Subject)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		a, err = s.linkOrCreate(ctx, id)
		if err != nil {
			return domain.SessionInfo{}, err
		}
	default:
		return domain.SessionInfo{}, err
	}

	if a.Status == domain.AccountStatusDisabled {
		return domain.SessionInfo{}, domain.ErrAccountDisabled
	}
	return s.loginAccount(ctx, a, ip, userAgent)
}

func (s *AuthService) linkOrCreate(ctx context.Context, id *auth.ExternalIdentity) (domain.Account, error) {
	if id.Email == "" {
		return domain.Account{}, domain.NewValidationError(map[string]string{"id_token": "email claim is required"})
	}

	existing, err := s.Accounts.GetAccountByEmail(ctx, id.Email)
	switch {
	case err == nil:
		if err := s.Accounts.LinkExternalAccount(ctx, existing.ID, id.Provider, id.Subject, id.Email); err != nil {
			return domain.Account{}, err
		}
		return existing.Account, nil
	case errors.Is(err, domain.ErrNotFound):
		return s.Accounts.CreateAccountWithExternal(ctx, id.Provider, id.Subject, id.Email)
	default:
		return domain.Account{}, err
	}
}

// loginAccount opens a session acting as the account's default profile, if
// it has one.
func (s *AuthService) loginAccount(ctx context.Context, a domain.Account, ip, userAgent string) (domain.SessionInfo, error) {
	var profile *domain.Profile
	if s.Profiles != nil {
		p, err := s.Profiles.GetDefaultProfile(ctx, a.ID)
		switch {
		case err == nil:
			profile = &p
		case !errors.Is(err, domain.ErrNotFound):
			return domain.SessionInfo{}, err
		}
	}

	info, err := s.openSession(ctx, a, profile, ip, userAgent)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	_ = s.Accounts.SetLastLogin(ctx, a.ID, s.now())
	return info, nil
}

func (s *AuthService) openSession(ctx context.Context, a domain.Account, p *domain.Profile, ip, userAgent string) (domain.SessionInfo, error) {
	profileID := ""
	if p != nil {
		profileID = p.ID
	}
	sessID, err := s.Sessions.CreateSession(ctx, a.ID, profileID, s.now().Add(s.SessionTTL), ip, userAgent)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	return domain.SessionInfo{SessionID: sessID, Account: a, Profile: p}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.RevokeSession(ctx, sessionID, s.now())
}

// SessionInfo resolves a session id to its account and active profile.
func (s *AuthService) SessionInfo(ctx context.Context, sessionID string) (domain.SessionInfo, error) {
	sess, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessionInfo{}, domain.ErrUnauthorized
		}
		return domain.SessionInfo{}, err
	}

	a, err := s.Accounts.GetAccountByID(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessionInfo{}, domain.ErrUnauthorized
		}
		return domain.SessionInfo{}, err
	}
	if a.Status == domain.AccountStatusDisabled {
		return domain.SessionInfo{}, domain.ErrForbidden
	}

	info := domain.SessionInfo{SessionID: sess.ID, Account: a}
	if sess.ProfileID != "" && s.Profiles != nil {
		p, err := s.Profiles.GetProfileByID(ctx, sess.ProfileID)
		switch {
		case err == nil:
			info.Profile = &p
		case !errors.Is(err, domain.ErrNotFound):
			return domain.SessionInfo{}, err
		}
	}
	return info, nil
}

func normalizeEmail(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
