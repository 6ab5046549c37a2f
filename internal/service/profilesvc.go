package service

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"questserver/internal/domain"
	"questserver/internal/username"
)

const (
	maxDisplayNameLen = 48
	maxBioLen         = 500
)

type ProfilesStore interface {
	CreateProfile(ctx context.Context, accountID string, np domain.NewProfile) (domain.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ListProfiles(ctx context.Context, accountID string) ([]domain.Profile, error)
	GetOwnedProfile(ctx context.Context, accountID, username string) (domain.Profile, error)
}

type ProfileSettingsStore interface {
	GetSettings(ctx context.Context, accountID string) (domain.AccountSettings, error)
	SetProfilePrompt(ctx context.Context, accountID string, ask bool) error
	SetDefaultProfile(ctx context.Context, accountID, username string) error
}

type SessionProfileStore interface {
	SetSessionProfile(ctx context.Context, sessionID, profileID string) error
}

type ProfileService struct {
	Profiles ProfilesStore
	Accounts ProfileSettingsStore
	Sessions SessionProfileStore
}

// CheckAvailability reports whether name could be claimed right now.
func (s *ProfileService) CheckAvailability(ctx context.Context, name string) (domain.Availability, error) {
	name = strings.TrimSpace(name)
	if err := username.Validate(name); err != nil {
		return domain.Availability{}, err
	}
	exists, err := s.Profiles.UsernameExists(ctx, name)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.Availability{Username: name, Available: !exists}, nil
}

func (s *ProfileService) Create(ctx context.Context, accountID string, np domain.NewProfile) (domain.Profile, error) {
	np, err := prepareNewProfile(np)
	if err != nil {
		return domain.Profile{}, err
	}
	return s.Profiles.CreateProfile(ctx, accountID, np)
}

func (s *ProfileService) List(ctx context.Context, accountID string) ([]domain.Profile, error) {
	return s.Profiles.ListProfiles(ctx, accountID)
}

// Choose sets the session's active profile. ChoiceClear switches the session
// to reader mode and returns a nil profile.
func (s *ProfileService) Choose(ctx context.Context, sessionID, accountID, choice string) (*domain.Profile, error) {
	choice = strings.TrimSpace(choice)
	if choice == domain.ChoiceClear {
		return nil, s.Sessions.SetSessionProfile(ctx, sessionID, "")
	}
	if !username.Valid(choice) {
		return nil, domain.NewValidationError(map[string]string{"profile": "bad username"})
	}

	p, err := s.Profiles.GetOwnedProfile(ctx, accountID, choice)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotProfileOwner
		}
		return nil, err
	}
	if err := s.Sessions.SetSessionProfile(ctx, sessionID, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Settings(ctx context.Context, accountID string) (domain.AccountSettings, error) {
	return s.Accounts.GetSettings(ctx, accountID)
}

// UpdateSettings applies a default-profile choice: ChoiceAsk, ChoiceReader,
// or the username of one of the account's profiles.
func (s *ProfileService) UpdateSettings(ctx context.Context, accountID, choice string) error {
	choice = strings.TrimSpace(choice)
	switch choice {
	case domain.ChoiceAsk, domain.ChoiceReader:
		return s.Accounts.SetProfilePrompt(ctx, accountID, choice == domain.ChoiceAsk)
	}
	if !username.Valid(choice) {
		return domain.NewValidationError(map[string]string{"default_profile": "bad username"})
	}
	return s.Accounts.SetDefaultProfile(ctx, accountID, choice)
}

// prepareNewProfile trims input, derives a missing username from the
// display name and enforces the username policy.
func prepareNewProfile(np domain.NewProfile) (domain.NewProfile, error) {
	np.DisplayName = strings.TrimSpace(np.DisplayName)
	np.Username = strings.TrimSpace(np.Username)
	np.Bio = strings.TrimSpace(np.Bio)

	fields := map[string]string{}
	switch {
	case np.DisplayName == "":
		fields["display_name"] = "is required"
	case utf8.RuneCountInString(np.DisplayName) > maxDisplayNameLen:
		fields["display_name"] = "must be 48 characters or less"
	case strings.IndexFunc(np.DisplayName, unicode.IsControl) >= 0:
		fields["display_name"] = "contains invalid characters"
	}

	if np.Username == "" {
		np.Username = username.Slugify(np.DisplayName)
	}
	var verr *domain.ValidationError
	if err := username.Validate(np.Username); errors.As(err, &verr) {
		for k, v := range verr.Fields {
			fields[k] = v
		}
	}

	if utf8.RuneCountInString(np.Bio) > maxBioLen {
		fields["bio"] = "must be 500 characters or less"
	}

	if len(fields) > 0 {
		return domain.NewProfile{}, domain.NewValidationError(fields)
	}
	return np, nil
}
