package domain

import "time"

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusDisabled AccountStatus = "disabled"
)

type Account struct {
	ID          string
	Email       string
	Status      AccountStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

type AccountWithPassword struct {
	Account
	PasswordHash string
}

type ExternalAccount struct {
	ID         string
	AccountID  string
	Provider   string
	ProviderID string
	Email      string
	CreatedAt  time.Time
}

type Session struct {
	ID        string
	AccountID string
	ProfileID string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}
