package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendrickPhan/go-verify-apple-id-token/validator"
	"google.golang.org/api/idtoken"
)

const (
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

// ExternalIdentity is the verified subject of a third-party ID token.
type ExternalIdentity struct {
	Provider string
	Issuer   string
	Subject  string
	Email    string
}

// IDTokenVerifier checks a token against the expected audience.
type IDTokenVerifier func(ctx context.Context, token, audience string) (*ExternalIdentity, error)

var (
	errMissingToken    = errors.New("missing id token")
	errMissingAudience = errors.New("missing audience")
)

func checkInputs(token, audience string) error {
	if strings.TrimSpace(token) == "" {
		return errMissingToken
	}
	if strings.TrimSpace(audience) == "" {
		return errMissingAudience
	}
	return nil
}

func VerifyGoogleIDToken(ctx context.Context, token, audience string) (*ExternalIdentity, error) {
	if err := checkInputs(token, audience); err != nil {
		return nil, err
	}

	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return nil, fmt.Errorf("google id token: %w", err)
	}
	switch payload.Issuer {
	case "accounts.google.com", "https://accounts.google.com":
	default:
		return nil, fmt.Errorf("unexpected issuer: %s", payload.Issuer)
	}

	email, _ := payload.Claims["email"].(string)
	return &ExternalIdentity{
		Provider: ProviderGoogle,
		Issuer:   payload.Issuer,
		Subject:  payload.Subject,
		Email:    normalizeEmail(email),
	}, nil
}

func VerifyAppleIDToken(ctx context.Context, token, audience string) (*ExternalIdentity, error) {
	if err := checkInputs(token, audience); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idToken, err := validator.NewClient().VerifyIdToken(audience, token)
	if err != nil {
		return nil, fmt.Errorf("apple id token: %w", err)
	}
	if idToken.Iss != "https://appleid.apple.com" {
		return nil, fmt.Errorf("unexpected issuer: %s", idToken.Iss)
	}

	return &ExternalIdentity{
		Provider: ProviderApple,
		Issuer:   idToken.Iss,
		Subject:  idToken.Sub,
		Email:    normalizeEmail(idToken.Email),
	}, nil
}

func normalizeEmail(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
