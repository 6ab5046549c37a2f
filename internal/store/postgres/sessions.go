package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"questserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionsStore struct {
	pool *pgxpool.Pool
}

func NewSessionsStore(pool *pgxpool.Pool) *SessionsStore {
	return &SessionsStore{pool: pool}
}

func (s *SessionsStore) CreateSession(ctx context.Context, accountID, profileID string, expiresAt time.Time, ip, userAgent string) (string, error) {
	const q = `
		INSERT INTO sessions (account_id, profile_id, expires_at, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var idUUID pgtype.UUID
	err := s.pool.QueryRow(ctx, q, accountID, nullIfEmpty(profileID), expiresAt, nullIfEmpty(ip), nullIfEmpty(userAgent)).Scan(&idUUID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return uuidOrEmpty(idUUID), nil
}

func (s *SessionsStore) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	const q = `
		SELECT id, account_id, profile_id, created_at, expires_at, revoked_at
		FROM sessions
		WHERE id = $1 AND revoked_at IS NULL AND expires_at > now()
	`

	// Cookies are client input; anything that is not a uuid cannot match.
	var lookup pgtype.UUID
	if err := lookup.Scan(sessionID); err != nil {
		return domain.Session{}, domain.ErrNotFound
	}

	var (
		sess      domain.Session
		idUUID    pgtype.UUID
		accountID pgtype.UUID
		profileID pgtype.UUID
		revokedTS pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, q, lookup).Scan(
		&idUUID,
		&accountID,
		&profileID,
		&sess.CreatedAt,
		&sess.ExpiresAt,
		&revokedTS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	sess.ID = uuidOrEmpty(idUUID)
	sess.AccountID = uuidOrEmpty(accountID)
	sess.ProfileID = uuidOrEmpty(profileID)
	sess.RevokedAt = timestamptzPtr(revokedTS)
	return sess, nil
}

// SetSessionProfile switches the session's active profile. An empty
// profileID puts the session in reader mode.
func (s *SessionsStore) SetSessionProfile(ctx context.Context, sessionID, profileID string) error {
	const q = `
		UPDATE sessions
		SET profile_id = $2
		WHERE id = $1 AND revoked_at IS NULL
	`
	if _, err := s.pool.Exec(ctx, q, sessionID, nullIfEmpty(profileID)); err != nil {
		return fmt.Errorf("set session profile: %w", err)
	}
	return nil
}

func (s *SessionsStore) RevokeSession(ctx context.Context, sessionID string, when time.Time) error {
	const q = `
		UPDATE sessions
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`

	_, err := s.pool.Exec(ctx, q, sessionID, when)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
