package postgres

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"questserver/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func textOrEmpty(t pgtype.Text) string {
	if t.Valid {
		return t.String
	}
	return ""
}

func timestamptzPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	tt := t.Time
	return &tt
}

func uuidOrEmpty(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuidBytesToString(u.Bytes)
}

func uuidBytesToString(b [16]byte) string {
	var buf [36]byte
	hex.Encode(buf[0:8], b[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], b[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], b[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], b[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:36], b[10:16])
	return string(buf[:])
}

// mapWriteError turns unique violations into domain errors.
func mapWriteError(op string, err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		switch pgerr.ConstraintName {
		case "profiles_username_uq":
			return domain.ErrUsernameTaken
		case "accounts_email_uq":
			return domain.ErrEmailTaken
		case "external_accounts_provider_uq":
			return domain.ErrExternalAccountExists
		default:
			return fmt.Errorf("%s: unique violation (%s): %w", op, pgerr.ConstraintName, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
