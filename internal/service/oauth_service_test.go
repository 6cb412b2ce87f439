package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type mockAuthService struct {
	IAuthService
	mock.Mock
}

func (m *mockAuthService) GoogleSignIn(ctx context.Context, idToken string) (*dto.GoogleSignInResponse, error) {
	args := m.Called(ctx, idToken)
	res, _ := args.Get(0).(*dto.GoogleSignInResponse)
	return res, args.Error(1)
}

func TestOAuthLoginURL(t *testing.T) {
	svc := NewOAuthService(&mockAuthService{}, "client-id", "secret", "http://localhost:3000/api/users/google/callback", logger.NewNopLogger())

	raw, state, err := svc.GetLoginURL()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.NotEmpty(t, state)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Contains(t, u.Query().Get("scope"), "openid")

	unconfigured := NewOAuthService(&mockAuthService{}, "", "", "", logger.NewNopLogger())
	_, _, err = unconfigured.GetLoginURL()
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestOAuthCallback(t *testing.T) {
	auth := &mockAuthService{}
	auth.On("GoogleSignIn", mock.Anything, "id-token").
		Return(&dto.GoogleSignInResponse{Email: "a@x.com", Password: "generated"}, nil)

	svc := NewOAuthService(auth, "client-id", "secret", "http://localhost/cb", logger.NewNopLogger()).(*oauthService)

	svc.exchange = func(ctx context.Context, code string) (*oauth2.Token, error) {
		tok := &oauth2.Token{AccessToken: "access"}
		if code == "no-id-token" {
			return tok, nil
		}
		if code == "bad" {
			return nil, errors.New("invalid_grant")
		}
		return tok.WithExtra(map[string]interface{}{"id_token": "id-token"}), nil
	}

	ctx := context.Background()

	res, err := svc.HandleCallback(ctx, "good", "st", "st")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.Email)

	_, err = svc.HandleCallback(ctx, "no-id-token", "st", "st")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	_, err = svc.HandleCallback(ctx, "bad", "st", "st")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	_, err = svc.HandleCallback(ctx, "", "st", "st")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	auth.AssertNumberOfCalls(t, "GoogleSignIn", 1)
}

func TestOAuthCallbackRejectsForeignState(t *testing.T) {
	auth := &mockAuthService{}
	svc := NewOAuthService(auth, "client-id", "secret", "http://localhost/cb", logger.NewNopLogger()).(*oauthService)
	exchanged := false
	svc.exchange = func(ctx context.Context, code string) (*oauth2.Token, error) {
		exchanged = true
		return nil, errors.New("unexpected exchange")
	}

	tests := []struct {
		name, state, expected string
	}{
		{name: "no cookie", state: "st", expected: ""},
		{name: "no state", state: "", expected: ""},
		{name: "mismatch", state: "attacker", expected: "st"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.HandleCallback(context.Background(), "good", tt.state, tt.expected)
			require.Error(t, err)
			assert.Equal(t, "Invalid OAuth state", err.Error())
		})
	}

	assert.False(t, exchanged)
	auth.AssertNotCalled(t, "GoogleSignIn", mock.Anything, mock.Anything)
}
