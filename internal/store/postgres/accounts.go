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

type AccountsStore struct {
	pool *pgxpool.Pool
}

func NewAccountsStore(pool *pgxpool.Pool) *AccountsStore {
	return &AccountsStore{pool: pool}
}

const accountColumns = `id, email, status, created_at, updated_at, last_login_at`

type accountRow struct {
	id          pgtype.UUID
	lastLoginTS pgtype.Timestamptz
}

func (r *accountRow) targets(a *domain.Account) []any {
	return []any{&r.id, &a.Email, &a.Status, &a.CreatedAt, &a.UpdatedAt, &r.lastLoginTS}
}

func (r *accountRow) finish(a *domain.Account) {
	a.ID = uuidOrEmpty(r.id)
	a.LastLoginAt = timestamptzPtr(r.lastLoginTS)
}

// CreateAccount inserts an account and, when p is non-nil, its first
// profile, which also becomes the account's default.
func (s *AccountsStore) CreateAccount(ctx context.Context, email, passwordHash string, p *domain.NewProfile) (domain.Account, *domain.Profile, error) {
	var (
		a       domain.Account
		profile *domain.Profile
	)
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		a, err = insertAccount(ctx, tx, email, passwordHash)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		created, err := insertProfile(ctx, tx, a.ID, *p)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE accounts SET default_profile_id = $2 WHERE id = $1`, a.ID, created.ID); err != nil {
			return fmt.Errorf("set default profile: %w", err)
		}
		profile = &created
		return nil
	})
	if err != nil {
		return domain.Account{}, nil, err
	}
	return a, profile, nil
}

func insertAccount(ctx context.Context, q querier, email, passwordHash string) (domain.Account, error) {
	const stmt = `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING ` + accountColumns

	var (
		a   domain.Account
		row accountRow
	)
	if err := q.QueryRow(ctx, stmt, email, passwordHash).Scan(row.targets(&a)...); err != nil {
		return domain.Account{}, mapWriteError("create account", err)
	}
	row.finish(&a)
	return a, nil
}

func (s *AccountsStore) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var (
		a   domain.Account
		row accountRow
	)
	if err := s.pool.QueryRow(ctx, q, id).Scan(row.targets(&a)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}
	row.finish(&a)
	return a, nil
}

func (s *AccountsStore) GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error) {
	const q = `SELECT ` + accountColumns + `, password_hash FROM accounts WHERE email = $1 LIMIT 1`

	var (
		a   domain.AccountWithPassword
		row accountRow
	)
	targets := append(row.targets(&a.Account), &a.PasswordHash)
	if err := s.pool.QueryRow(ctx, q, email).Scan(targets...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccountWithPassword{}, domain.ErrNotFound
		}
		return domain.AccountWithPassword{}, fmt.Errorf("get account by email: %w", err)
	}
	row.finish(&a.Account)
	return a, nil
}

func (s *AccountsStore) GetAccountByExternal(ctx context.Context, provider, providerID string) (domain.Account, error) {
	const q = `
		SELECT a.id, a.email, a.status, a.created_at, a.updated_at, a.last_login_at
		FROM external_accounts e
		JOIN accounts a ON a.id = e.account_id
		WHERE e.provider = $1 AND e.provider_id = $2
	`

	var (
		a   domain.Account
		row accountRow
	)
	if err := s.pool.QueryRow(ctx, q, provider, providerID).Scan(row.targets(&a)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by external: %w", err)
	}
	row.finish(&a)
	return a, nil
}

// CreateAccountWithExternal creates a password-less account linked to an
// external identity.
func (s *AccountsStore) CreateAccountWithExternal(ctx context.Context, provider, providerID, email string) (domain.Account, error) {
	var a domain.Account
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		a, err = insertAccount(ctx, tx, email, "")
		if err != nil {
			return err
		}
		return insertExternal(ctx, tx, a.ID, provider, providerID, email)
	})
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

func (s *AccountsStore) LinkExternalAccount(ctx context.Context, accountID, provider, providerID, email string) error {
	return insertExternal(ctx, s.pool, accountID, provider, providerID, email)
}

func insertExternal(ctx context.Context, q querier, accountID, provider, providerID, email string) error {
	const stmt = `
		INSERT INTO external_accounts (account_id, provider, provider_id, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id pgtype.UUID
	if err := q.QueryRow(ctx, stmt, accountID, provider, providerID, nullIfEmpty(email)).Scan(&id); err != nil {
		return mapWriteError("link external account", err)
	}
	return nil
}

func (s *AccountsStore) SetLastLogin(ctx context.Context, accountID string, when time.Time) error {
	const q = `
		UPDATE accounts
		SET last_login_at = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := s.pool.Exec(ctx, q, accountID, when); err != nil {
		return fmt.Errorf("set last login: %w", err)
	}
	return nil
}

func (s *AccountsStore) SetPasswordHash(ctx context.Context, accountID, passwordHash string) error {
	const q = `
		UPDATE accounts
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := s.pool.Exec(ctx, q, accountID, passwordHash); err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return nil
}

func (s *AccountsStore) GetSettings(ctx context.Context, accountID string) (domain.AccountSettings, error) {
	const q = `
		SELECT a.ask_for_profile_on_login, p.username
		FROM accounts a
		LEFT JOIN profiles p ON p.id = a.default_profile_id
		WHERE a.id = $1
	`

	var (
		out      domain.AccountSettings
		username pgtype.Text
	)
	if err := s.pool.QueryRow(ctx, q, accountID).Scan(&out.AskForProfileOnLogin, &username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccountSettings{}, domain.ErrNotFound
		}
		return domain.AccountSettings{}, fmt.Errorf("get settings: %w", err)
	}
	out.DefaultProfileUsername = textOrEmpty(username)
	return out, nil
}

// SetProfilePrompt clears the default profile and records whether the
// account should be asked to pick one on login.
func (s *AccountsStore) SetProfilePrompt(ctx context.Context, accountID string, ask bool) error {
	const q = `
		UPDATE accounts
		SET ask_for_profile_on_login = $2, default_profile_id = NULL, updated_at = now()
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, accountID, ask)
	if err != nil {
		return fmt.Errorf("set profile prompt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefaultProfile makes one of the account's own profiles the default.
func (s *AccountsStore) SetDefaultProfile(ctx context.Context, accountID, username string) error {
	const q = `
		UPDATE accounts
		SET ask_for_profile_on_login = false, default_profile_id = p.id, updated_at = now()
		FROM profiles p
		WHERE accounts.id = $1 AND p.account_id = accounts.id AND p.username = $2
	`
	tag, err := s.pool.Exec(ctx, q, accountID, username)
	if err != nil {
		return fmt.Errorf("set default profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotProfileOwner
	}
	return nil
}
