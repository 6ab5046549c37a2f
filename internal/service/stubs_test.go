package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"questserver/internal/domain"
)

type stubAccountsStore struct {
	t *testing.T

	createAccountFunc             func(context.Context, string, string, *domain.NewProfile) (domain.Account, *domain.Profile, error)
	getAccountByIDFunc            func(context.Context, string) (domain.Account, error)
	getAccountByEmailFunc         func(context.Context, string) (domain.AccountWithPassword, error)
	getAccountByExternalFunc      func(context.Context, string, string) (domain.Account, error)
	createAccountWithExternalFunc func(context.Context, string, string, string) (domain.Account, error)
	linkExternalAccountFunc       func(context.Context, string, string, string, string) error
	setLastLoginFunc              func(context.Context, string, time.Time) error
	setPasswordHashFunc           func(context.Context, string, string) error
	getSettingsFunc               func(context.Context, string) (domain.AccountSettings, error)
	setProfilePromptFunc          func(context.Context, string, bool) error
	setDefaultProfileFunc         func(context.Context, string, string) error
}

func (s *stubAccountsStore) CreateAccount(ctx context.Context, email, passwordHash string, p *domain.NewProfile) (domain.Account, *domain.Profile, error) {
	if s.createAccountFunc != nil {
		return s.createAccountFunc(ctx, email, passwordHash, p)
	}
	s.t.Fatalf("CreateAccount called unexpectedly")
	return domain.Account{}, nil, errors.New("unexpected call")
}

func (s *stubAccountsStore) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	if s.getAccountByIDFunc != nil {
		return s.getAccountByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetAccountByID called unexpectedly")
	return domain.Account{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error) {
	if s.getAccountByEmailFunc != nil {
		return s.getAccountByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetAccountByEmail called unexpectedly")
	return domain.AccountWithPassword{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) GetAccountByExternal(ctx context.Context, provider, providerID string) (domain.Account, error) {
	if s.getAccountByExternalFunc != nil {
		return s.getAccountByExternalFunc(ctx, provider, providerID)
	}
	s.t.Fatalf("GetAccountByExternal called unexpectedly")
	return domain.Account{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) CreateAccountWithExternal(ctx context.Context, provider, providerID, email string) (domain.Account, error) {
	if s.createAccountWithExternalFunc != nil {
		return s.createAccountWithExternalFunc(ctx, provider, providerID, email)
	}
	s.t.Fatalf("CreateAccountWithExternal called unexpectedly")
	return domain.Account{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) LinkExternalAccount(ctx context.Context, accountID, provider, providerID, email string) error {
	if s.linkExternalAccountFunc != nil {
		return s.linkExternalAccountFunc(ctx, accountID, provider, providerID, email)
	}
	s.t.Fatalf("LinkExternalAccount called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubAccountsStore) SetLastLogin(ctx context.Context, accountID string, when time.Time) error {
	if s.setLastLoginFunc != nil {
		return s.setLastLoginFunc(ctx, accountID, when)
	}
	s.t.Fatalf("SetLastLogin called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubAccountsStore) SetPasswordHash(ctx context.Context, accountID, passwordHash string) error {
	if s.setPasswordHashFunc != nil {
		return s.setPasswordHashFunc(ctx, accountID, passwordHash)
	}
	s.t.Fatalf("SetPasswordHash called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubAccountsStore) GetSettings(ctx context.Context, accountID string) (domain.AccountSettings, error) {
	if s.getSettingsFunc != nil {
		return s.getSettingsFunc(ctx, accountID)
	}
	s.t.Fatalf("GetSettings called unexpectedly")
	return domain.AccountSettings{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) SetProfilePrompt(ctx context.Context, accountID string, ask bool) error {
	if s.setProfilePromptFunc != nil {
		return s.setProfilePromptFunc(ctx, accountID, ask)
	}
	s.t.Fatalf("SetProfilePrompt called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubAccountsStore) SetDefaultProfile(ctx context.Context, accountID, username string) error {
	if s.setDefaultProfileFunc != nil {
		return s.setDefaultProfileFunc(ctx, accountID, username)
	}
	s.t.Fatalf("SetDefaultProfile called unexpectedly")
	return errors.New("unexpected call")
}

type stubSessionsStore struct {
	t *testing.T

	createSessionFunc     func(context.Context, string, string, time.Time, string, string) (string, error)
	getSessionFunc        func(context.Context, string) (domain.Session, error)
	revokeSessionFunc     func(context.Context, string, time.Time) error
	setSessionProfileFunc func(context.Context, string, string) error
}

func (s *stubSessionsStore) CreateSession(ctx context.Context, accountID, profileID string, expiresAt time.Time, ip, userAgent string) (string, error) {
	if s.createSessionFunc != nil {
		return s.createSessionFunc(ctx, accountID, profileID, expiresAt, ip, userAgent)
	}
	s.t.Fatalf("CreateSession called unexpectedly")
	return "", errors.New("unexpected call")
}

func (s *stubSessionsStore) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	if s.getSessionFunc != nil {
		return s.getSessionFunc(ctx, sessionID)
	}
	s.t.Fatalf("GetSession called unexpectedly")
	return domain.Session{}, errors.New("unexpected call")
}

func (s *stubSessionsStore) RevokeSession(ctx context.Context, sessionID string, when time.Time) error {
	if s.revokeSessionFunc != nil {
		return s.revokeSessionFunc(ctx, sessionID, when)
	}
	s.t.Fatalf("RevokeSession called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubSessionsStore) SetSessionProfile(ctx context.Context, sessionID, profileID string) error {
	if s.setSessionProfileFunc != nil {
		return s.setSessionProfileFunc(ctx, sessionID, profileID)
	}
	s.t.Fatalf("SetSessionProfile called unexpectedly")
	return errors.New("unexpected call")
}

type stubProfilesStore struct {
	t *testing.T

	createProfileFunc     func(context.Context, string, domain.NewProfile) (domain.Profile, error)
	usernameExistsFunc    func(context.Context, string) (bool, error)
	listProfilesFunc      func(context.Context, string) ([]domain.Profile, error)
	getOwnedProfileFunc   func(context.Context, string, string) (domain.Profile, error)
	getProfileByIDFunc    func(context.Context, string) (domain.Profile, error)
	getDefaultProfileFunc func(context.Context, string) (domain.Profile, error)
}

func (s *stubProfilesStore) CreateProfile(ctx context.Context, accountID string, np domain.NewProfile) (domain.Profile, error) {
	if s.createProfileFunc != nil {
		return s.createProfileFunc(ctx, accountID, np)
	}
	s.t.Fatalf("CreateProfile called unexpectedly")
	return domain.Profile{}, errors.New("unexpected call")
}

func (s *stubProfilesStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if s.usernameExistsFunc != nil {
		return s.usernameExistsFunc(ctx, username)
	}
	s.t.Fatalf("UsernameExists called unexpectedly")
	return false, errors.New("unexpected call")
}

func (s *stubProfilesStore) ListProfiles(ctx context.Context, accountID string) ([]domain.Profile, error) {
	if s.listProfilesFunc != nil {
		return s.listProfilesFunc(ctx, accountID)
	}
	s.t.Fatalf("ListProfiles called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubProfilesStore) GetOwnedProfile(ctx context.Context, accountID, username string) (domain.Profile, error) {
	if s.getOwnedProfileFunc != nil {
		return s.getOwnedProfileFunc(ctx, accountID, username)
	}
	s.t.Fatalf("GetOwnedProfile called unexpectedly")
	return domain.Profile{}, errors.New("unexpected call")
}

func (s *stubProfilesStore) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	if s.getProfileByIDFunc != nil {
		return s.getProfileByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetProfileByID called unexpectedly")
	return domain.Profile{}, errors.New("unexpected call")
}

func (s *stubProfilesStore) GetDefaultProfile(ctx context.Context, accountID string) (domain.Profile, error) {
	if s.getDefaultProfileFunc != nil {
		return s.getDefaultProfileFunc(ctx, accountID)
	}
	s.t.Fatalf("GetDefaultProfile called unexpectedly")
	return domain.Profile{}, errors.New("unexpected call")
}
