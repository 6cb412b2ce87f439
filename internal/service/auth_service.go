package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/mapper"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/googleauth"
	"sticky-notes-be/internal/pkg/hasher"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/unitofwork"
	"sticky-notes-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const AccessTokenTTL = time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	Logout(ctx context.Context, token string) error

	Register(ctx context.Context, req *dto.RegisterRequest) error
	ConfirmRegistration(ctx context.Context, req *dto.VerifyOtpRequest) (string, error)
	SetPassword(ctx context.Context, req *dto.SignupRequest) error

	RequestReset(ctx context.Context, req *dto.SendOtpRequest) error
	VerifyReset(ctx context.Context, req *dto.VerifyResetOtpRequest) (string, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error

	GoogleSignIn(ctx context.Context, idToken string) (*dto.GoogleSignInResponse, error)
}

// TokenClaims is the bearer token payload.
type TokenClaims struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	otpService     IOtpService
	blacklist      IBlacklistService
	hasher         hasher.PasswordHasher
	googleVerifier googleauth.TokenVerifier
	eventPublisher events.Publisher
	logger         logger.ILogger
	userMapper     *mapper.UserMapper
	jwtSecret      []byte
	now            func() time.Time
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	otpService IOtpService,
	blacklist IBlacklistService,
	passwordHasher hasher.PasswordHasher,
	googleVerifier googleauth.TokenVerifier,
	eventPublisher events.Publisher,
	log logger.ILogger,
	jwtSecret string,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		otpService:     otpService,
		blacklist:      blacklist,
		hasher:         passwordHasher,
		googleVerifier: googleVerifier,
		eventPublisher: eventPublisher,
		logger:         log,
		userMapper:     mapper.NewUserMapper(),
		jwtSecret:      []byte(jwtSecret),
		now:            time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("Server error", err)
	}
	if user == nil || !user.HasPassword() {
		return nil, apperror.ErrInvalidCredentials
	}
	if !s.hasher.Check(req.Password, *user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.UserLogin, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	}))

	return &dto.LoginResponse{
		Token:   token,
		Message: "Login Successful",
		User:    s.userMapper.ToDTO(user),
	}, nil
}

func (s *authService) signToken(user *entity.User) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", apperror.ErrServerMisconfigured
	}

	now := s.now()
	claims := TokenClaims{
		UserId: user.Id.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.Internal("Server error", err)
	}
	return signed, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Unauthorized - No token provided")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperror.Unauthorized("Unauthorized - Token is blacklisted")
	}

	if len(s.jwtSecret) == 0 {
		return nil, apperror.ErrServerMisconfigured
	}

	claims := &TokenClaims{}
	_, err = jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperror.Unauthorized("Unauthorized - Invalid token")
	}

	userId, err := uuid.Parse(claims.UserId)
	if err != nil {
		return nil, apperror.Unauthorized("Unauthorized - Invalid token")
	}

	user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindByID(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("Unauthorized - User not found")
	}

	return &entity.Identity{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperror.BadRequest("Bad Request - No token provided")
	}
	return s.blacklist.Revoke(ctx, token)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" {
		return apperror.BadRequest("Email is required.")
	}

	existing, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return apperror.Internal("Error sending OTP", err)
	}
	if existing != nil && existing.HasPassword() {
		return apperror.Conflict("User already exists")
	}

	_, err = s.otpService.Issue(ctx, email)
	return err
}

func (s *authService) ConfirmRegistration(ctx context.Context, req *dto.VerifyOtpRequest) (string, error) {
	email, err := s.otpService.Verify(ctx, req.Otp)
	if err != nil {
		return "", err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return "", apperror.Internal("Error verifying OTP", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return "", apperror.Internal("Error verifying OTP", err)
	}

	var created *entity.User
	if existing == nil {
		now := s.now()
		created = &entity.User{
			Id:        uuid.New(),
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := uow.UserRepository().Create(ctx, created)
		if errors.Is(err, contract.ErrDuplicateEmail) {
			// a concurrent confirmation created it; the aborted tx is rolled back
			return email, nil
		}
		if err != nil {
			return "", apperror.Internal("Error verifying OTP", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return "", apperror.Internal("Error verifying OTP", err)
	}

	if created != nil {
		s.publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
			"user_id": created.Id.String(),
			"email":   created.Email,
		}))
	}
	return email, nil
}

func (s *authService) SetPassword(ctx context.Context, req *dto.SignupRequest) error {
	if err := s.overwritePassword(ctx, req.Email, req.Password); err != nil {
		return err
	}
	s.logger.Info("AUTH", "Password set", map[string]interface{}{"email": normalizeEmail(req.Email)})
	return nil
}

func (s *authService) RequestReset(ctx context.Context, req *dto.SendOtpRequest) error {
	_, err := s.otpService.Issue(ctx, req.Email)
	return err
}

func (s *authService) VerifyReset(ctx context.Context, req *dto.VerifyResetOtpRequest) (string, error) {
	return s.otpService.VerifyFor(ctx, req.Email, req.Otp)
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := s.overwritePassword(ctx, req.Email, req.NewPassword); err != nil {
		return err
	}
	s.logger.Info("AUTH", "Password reset", map[string]interface{}{"email": normalizeEmail(req.Email)})
	return nil
}

// overwritePassword hashes exactly once; the store persists the digest as given.
func (s *authService) overwritePassword(ctx context.Context, email, password string) error {
	repo := s.uowFactory.NewUnitOfWork(ctx).UserRepository()

	user, err := repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return apperror.Internal("Failed to set password", err)
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, hasher.ErrPasswordTooLong) {
		return apperror.Validation("Password must be at most 72 bytes", nil)
	}
	if err != nil {
		return apperror.Internal("Failed to set password", err)
	}

	if err := repo.UpdatePassword(ctx, user.Id, hash); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal("Failed to set password", err)
	}
	return nil
}

// GoogleSignIn does not create the account. It hands back a generated password
// that the client submits to signup after the usual OTP registration.
func (s *authService) GoogleSignIn(ctx context.Context, idToken string) (*dto.GoogleSignInResponse, error) {
	if idToken == "" {
		return nil, apperror.ErrInvalidToken
	}

	claims, err := s.googleVerifier.Verify(ctx, idToken)
	if errors.Is(err, googleauth.ErrMissingEmail) {
		s.logger.Warn("AUTH", "Google token has no email scope", nil)
		return nil, apperror.ErrInvalidToken
	}
	if err != nil {
		s.logger.Warn("AUTH", "Google token rejected", map[string]interface{}{"error": err.Error()})
		return nil, apperror.ErrInvalidToken
	}

	email := normalizeEmail(claims.Email)
	if email == "" {
		return nil, apperror.ErrInvalidToken
	}

	if claims.Subject != "" {
		s.linkGoogleSubject(ctx, email, claims.Subject)
	}

	password, err := randomPassword()
	if err != nil {
		return nil, apperror.Internal("Server error", err)
	}

	return &dto.GoogleSignInResponse{Email: email, Password: password}, nil
}

// linkGoogleSubject is best effort; sign-in succeeds even when it fails.
func (s *authService) linkGoogleSubject(ctx context.Context, email, subject string) {
	repo := s.uowFactory.NewUnitOfWork(ctx).UserRepository()

	user, err := repo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return
	}
	if user.GoogleSubject != nil && *user.GoogleSubject == subject {
		return
	}
	if err := repo.LinkGoogleSubject(ctx, user.Id, subject); err != nil {
		s.logger.Warn("AUTH", "Failed to link Google account", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
	}
}

func randomPassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.eventPublisher, s.logger, event)
}
