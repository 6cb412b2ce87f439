package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// IOAuthService is the browser redirect variant of Google sign-in: the callback
// exchanges the code, takes the ID token from the response and signs in with it.
type IOAuthService interface {
	GetLoginURL() (url string, state string, err error)
	HandleCallback(ctx context.Context, code, state, expectedState string) (*dto.GoogleSignInResponse, error)
}

type oauthService struct {
	authService IAuthService
	googleConf  *oauth2.Config
	logger      logger.ILogger
	exchange    func(ctx context.Context, code string) (*oauth2.Token, error)
}

func NewOAuthService(authService IAuthService, clientID, clientSecret, redirectURL string, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	s := &oauthService{
		authService: authService,
		googleConf:  conf,
		logger:      log,
	}
	s.exchange = func(ctx context.Context, code string) (*oauth2.Token, error) {
		return conf.Exchange(ctx, code)
	}
	return s
}

func (s *oauthService) configured() bool {
	return s.googleConf.ClientID != "" && s.googleConf.ClientSecret != "" && s.googleConf.RedirectURL != ""
}

// GetLoginURL returns the consent URL and the state it carries; the caller keeps
// the state on the browser side and hands it back to HandleCallback.
func (s *oauthService) GetLoginURL() (string, string, error) {
	if !s.configured() {
		return "", "", apperror.BadRequest("Google sign-in is not configured")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", "", apperror.Internal("Server error", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), state, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, code, state, expectedState string) (*dto.GoogleSignInResponse, error) {
	if !s.configured() {
		return nil, apperror.BadRequest("Google sign-in is not configured")
	}
	if state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) != 1 {
		s.logger.Warn("OAUTH", "Callback state mismatch", nil)
		return nil, apperror.BadRequest("Invalid OAuth state")
	}
	if code == "" {
		return nil, apperror.BadRequest("Missing code")
	}

	token, err := s.exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.ErrInvalidToken
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		s.logger.Warn("OAUTH", "Token response carries no id_token", nil)
		return nil, apperror.ErrInvalidToken
	}

	return s.authService.GoogleSignIn(ctx, idToken)
}
