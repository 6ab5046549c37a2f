package domain

import "time"

// Profile is a public identity owned by an account. An account may own
// several and act as at most one of them per session.
type Profile struct {
	ID          string    `json:"-"`
	AccountID   string    `json:"-"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewProfile struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
}

type Availability struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// Settings choices that are not usernames.
const (
	ChoiceAsk    = "@ask"
	ChoiceReader = "@reader"
	// ChoiceClear drops the active profile for the current session.
	ChoiceClear = "@"
)

type AccountSettings struct {
	AskForProfileOnLogin   bool   `json:"ask_for_profile_on_login"`
	DefaultProfileUsername string `json:"default_profile,omitempty"`
}

// SessionInfo is what a request knows about its caller.
type SessionInfo struct {
	SessionID string
	Account   Account
	Profile   *Profile
}
