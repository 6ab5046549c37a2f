package httpapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"questserver/internal/domain"
)

var errUnexpectedCall = errors.New("unexpected call")

type stubAccountsStore struct {
	t *testing.T

	getAccountByIDFunc    func(context.Context, string) (domain.Account, error)
	getAccountByEmailFunc func(context.Context, string) (domain.AccountWithPassword, error)
	setLastLoginFunc      func(context.Context, string, time.Time) error
	getSettingsFunc       func(context.Context, string) (domain.AccountSettings, error)
	setDefaultProfileFunc func(context.Context, string, string) error
}

func (s *stubAccountsStore) CreateAccount(context.Context, string, string, *domain.NewProfile) (domain.Account, *domain.Profile, error) {
	s.t.Fatalf("CreateAccount called unexpectedly")
	return domain.Account{}, nil, errUnexpectedCall
}

func (s *stubAccountsStore) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	if s.getAccountByIDFunc != nil {
		return s.getAccountByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetAccountByID called unexpectedly")
	return domain.Account{}, errUnexpectedCall
}

func (s *stubAccountsStore) GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error) {
	if s.getAccountByEmailFunc != nil {
		return s.getAccountByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetAccountByEmail called unexpectedly")
	return domain.AccountWithPassword{}, errUnexpectedCall
}

func (s *stubAccountsStore) GetAccountByExternal(context.Context, string, string) (domain.Account, error) {
	s.t.Fatalf("GetAccountByExternal called unexpectedly")
	return domain.Account{}, errUnexpectedCall
}

func (s *stubAccountsStore) CreateAccountWithExternal(context.Context, string, string, string) (domain.Account, error) {
	s.t.Fatalf("CreateAccountWithExternal called unexpectedly")
	return domain.Account{}, errUnexpectedCall
}

func (s *stubAccountsStore) LinkExternalAccount(context.Context, string, string, string, string) error {
	s.t.Fatalf("LinkExternalAccount called unexpectedly")
	return errUnexpectedCall
}

func (s *stubAccountsStore) SetLastLogin(ctx context.Context, accountID string, when time.Time) error {
	if s.setLastLoginFunc != nil {
		return s.setLastLoginFunc(ctx, accountID, when)
	}
	s.t.Fatalf("SetLastLogin called unexpectedly")
	return errUnexpectedCall
}

func (s *stubAccountsStore) SetPasswordHash(context.Context, string, string) error {
	s.t.Fatalf("SetPasswordHash called unexpectedly")
	return errUnexpectedCall
}

func (s *stubAccountsStore) GetSettings(ctx context.Context, accountID string) (domain.AccountSettings, error) {
	if s.getSettingsFunc != nil {
		return s.getSettingsFunc(ctx, accountID)
	}
	s.t.Fatalf("GetSettings called unexpectedly")
	return domain.AccountSettings{}, errUnexpectedCall
}

func (s *stubAccountsStore) SetProfilePrompt(context.Context, string, bool) error {
	s.t.Fatalf("SetProfilePrompt called unexpectedly")
	return errUnexpectedCall
}

func (s *stubAccountsStore) SetDefaultProfile(ctx context.Context, accountID, username string) error {
	if s.setDefaultProfileFunc != nil {
		return s.setDefaultProfileFunc(ctx, accountID, username)
	}
	s.t.Fatalf("SetDefaultProfile called unexpectedly")
	return errUnexpectedCall
}

type stubSessionsStore struct {
	t *testing.T

	getSessionFunc        func(context.Context, string) (domain.Session, error)
	setSessionProfileFunc func(context.Context, string, string) error
}

func (s *stubSessionsStore) CreateSession(context.Context, string, string, time.Time, string, string) (string, error) {
	s.t.Fatalf("CreateSession called unexpectedly")
	return "", errUnexpectedCall
}

func (s *stubSessionsStore) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	if s.getSessionFunc != nil {
		return s.getSessionFunc(ctx, sessionID)
	}
	s.t.Fatalf("GetSession called unexpectedly")
	return domain.Session{}, errUnexpectedCall
}

func (s *stubSessionsStore) RevokeSession(context.Context, string, time.Time) error {
	s.t.Fatalf("RevokeSession called unexpectedly")
	return errUnexpectedCall
}

func (s *stubSessionsStore) SetSessionProfile(ctx context.Context, sessionID, profileID string) error {
	if s.setSessionProfileFunc != nil {
		return s.setSessionProfileFunc(ctx, sessionID, profileID)
	}
	s.t.Fatalf("SetSessionProfile called unexpectedly")
	return errUnexpectedCall
}

type stubProfilesStore struct {
	t *testing.T

	usernameExistsFunc  func(context.Context, string) (bool, error)
	getOwnedProfileFunc func(context.Context, string, string) (domain.Profile, error)
	getProfileByIDFunc  func(context.Context, string) (domain.Profile, error)
}

func (s *stubProfilesStore) CreateProfile(context.Context, string, domain.NewProfile) (domain.Profile, error) {
	s.t.Fatalf("CreateProfile called unexpectedly")
	return domain.Profile{}, errUnexpectedCall
}

func (s *stubProfilesStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if s.usernameExistsFunc != nil {
		return s.usernameExistsFunc(ctx, username)
	}
	s.t.Fatalf("UsernameExists called unexpectedly")
	return false, errUnexpectedCall
}

func (s *stubProfilesStore) ListProfiles(context.Context, string) ([]domain.Profile, error) {
	s.t.Fatalf("ListProfiles called unexpectedly")
	return nil, errUnexpectedCall
}

func (s *stubProfilesStore) GetOwnedProfile(ctx context.Context, accountID, username string) (domain.Profile, error) {
	if s.getOwnedProfileFunc != nil {
		return s.getOwnedProfileFunc(ctx, accountID, username)
	}
	s.t.Fatalf("GetOwnedProfile called unexpectedly")
	return domain.Profile{}, errUnexpectedCall
}

func (s *stubProfilesStore) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	if s.getProfileByIDFunc != nil {
		return s.getProfileByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetProfileByID called unexpectedly")
	return domain.Profile{}, errUnexpectedCall
}

func (s *stubProfilesStore) GetDefaultProfile(context.Context, string) (domain.Profile, error) {
	s.t.Fatalf("GetDefaultProfile called unexpectedly")
	return domain.Profile{}, errUnexpectedCall
}
