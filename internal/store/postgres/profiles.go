package postgres

import (
	"context"
	"errors"
	"fmt"

	"questserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfilesStore struct {
	pool *pgxpool.Pool
}

func NewProfilesStore(pool *pgxpool.Pool) *ProfilesStore {
	return &ProfilesStore{pool: pool}
}

const profileColumns = `id, account_id, username, display_name, bio, created_at`

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var (
		p         domain.Profile
		idUUID    pgtype.UUID
		accountID pgtype.UUID
		bio       pgtype.Text
	)
	if err := row.Scan(&idUUID, &accountID, &p.Username, &p.DisplayName, &bio, &p.CreatedAt); err != nil {
		return domain.Profile{}, err
	}
	p.ID = uuidOrEmpty(idUUID)
	p.AccountID = uuidOrEmpty(accountID)
	p.Bio = textOrEmpty(bio)
	return p, nil
}

func insertProfile(ctx context.Context, q querier, accountID string, np domain.NewProfile) (domain.Profile, error) {
	const stmt = `
		INSERT INTO profiles (account_id, username, display_name, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + profileColumns

	p, err := scanProfile(q.QueryRow(ctx, stmt, accountID, np.Username, np.DisplayName, nullIfEmpty(np.Bio)))
	if err != nil {
		return domain.Profile{}, mapWriteError("create profile", err)
	}
	return p, nil
}

func (s *ProfilesStore) CreateProfile(ctx context.Context, accountID string, np domain.NewProfile) (domain.Profile, error) {
	return insertProfile(ctx, s.pool, accountID, np)
}

func (s *ProfilesStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, q, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("username exists: %w", err)
	}
	return exists, nil
}

func (s *ProfilesStore) ListProfiles(ctx context.Context, accountID string) ([]domain.Profile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE account_id = $1
		ORDER BY display_name ASC, username ASC
	`

	rows, err := s.pool.Query(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

// GetOwnedProfile returns the profile only if accountID owns it.
func (s *ProfilesStore) GetOwnedProfile(ctx context.Context, accountID, username string) (domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE account_id = $1 AND username = $2`
	return s.getOne(ctx, "get owned profile", q, accountID, username)
}

func (s *ProfilesStore) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return s.getOne(ctx, "get profile", q, id)
}

func (s *ProfilesStore) GetDefaultProfile(ctx context.Context, accountID string) (domain.Profile, error) {
	const q = `
		SELECT p.id, p.account_id, p.username, p.display_name, p.bio, p.created_at
		FROM accounts a
		JOIN profiles p ON p.id = a.default_profile_id
		WHERE a.id = $1
	`
	return s.getOne(ctx, "get default profile", q, accountID)
}

func (s *ProfilesStore) getOne(ctx context.Context, op, q string, args ...any) (domain.Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
