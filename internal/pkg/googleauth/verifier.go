// Package googleauth verifies Google ID tokens against Google's signing keys.
package googleauth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

var ErrMissingEmail = errors.New("google token carries no email")

// Claims is the subset of the ID token payload the service uses.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

type idTokenVerifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewVerifier checks signature, expiry, issuer and that the audience is clientID.
func NewVerifier(clientID string) TokenVerifier {
	return &idTokenVerifier{
		audience: clientID,
		validate: idtoken.Validate,
	}
}

func (v *idTokenVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if v.audience == "" {
		return nil, errors.New("google client id is not configured")
	}

	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return nil, err
	}
	return claimsFromPayload(payload)
}

func claimsFromPayload(payload *idtoken.Payload) (*Claims, error) {
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}
	verified, _ := payload.Claims["email_verified"].(bool)

	return &Claims{
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: verified,
	}, nil
}
