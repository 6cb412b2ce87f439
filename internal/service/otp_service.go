package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/pkg/mailer"
	"sticky-notes-be/internal/repository/contract"
)

const (
	OtpTTL           = 5 * time.Minute
	otpIssueAttempts = 5
)

type IOtpService interface {
	// Issue stores a fresh code for email, replacing any pending one, and mails it.
	Issue(ctx context.Context, email string) (string, error)
	// Verify consumes code and returns the email it was issued to.
	Verify(ctx context.Context, code string) (string, error)
	// VerifyFor is Verify that also requires the code to belong to email.
	VerifyFor(ctx context.Context, email, code string) (string, error)
}

type otpService struct {
	repo     contract.OtpRepository
	mailer   mailer.IEmailService
	logger   logger.ILogger
	now      func() time.Time
	generate func() (string, error)
}

func NewOtpService(repo contract.OtpRepository, emailService mailer.IEmailService, log logger.ILogger) IOtpService {
	return &otpService{
		repo:     repo,
		mailer:   emailService,
		logger:   log,
		now:      time.Now,
		generate: generateOTP,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *otpService) Issue(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", apperror.BadRequest("Email is required.")
	}

	code, err := s.store(ctx, email)
	if err != nil {
		return "", err
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		return "", apperror.Internal("Error sending OTP", err)
	}
	return code, nil
}

// store retries with a new code while the drawn one is pending for another email.
func (s *otpService) store(ctx context.Context, email string) (string, error) {
	for attempt := 0; attempt < otpIssueAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return "", apperror.Internal("Error generating OTP", err)
		}

		err = s.repo.Upsert(ctx, &entity.Otp{
			Email:     email,
			Code:      code,
			ExpiresAt: s.now().Add(OtpTTL),
		})
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, contract.ErrOtpCodeInUse) {
			return "", apperror.Internal("Error saving OTP", err)
		}

		s.logger.Debug("OTP", "Drawn code is pending for another email, retrying", map[string]interface{}{
			"attempt": attempt + 1,
		})
	}
	return "", apperror.Internal("Error saving OTP", contract.ErrOtpCodeInUse)
}

func (s *otpService) Verify(ctx context.Context, code string) (string, error) {
	otp, err := s.take(ctx, code, "")
	if err != nil {
		return "", err
	}
	return otp.Email, nil
}

// VerifyFor leaves the code usable when it belongs to a different email.
func (s *otpService) VerifyFor(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", apperror.BadRequest("Email is required.")
	}
	otp, err := s.take(ctx, code, email)
	if err != nil {
		return "", err
	}
	return otp.Email, nil
}

// take removes the record in the same step as reading it, so an expired code
// is gone afterwards as well. A non-empty email restricts the match.
func (s *otpService) take(ctx context.Context, code, email string) (*entity.Otp, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.BadRequest("OTP is required.")
	}

	var (
		otp *entity.Otp
		err error
	)
	if email == "" {
		otp, err = s.repo.Take(ctx, code)
	} else {
		otp, err = s.repo.TakeFor(ctx, code, email)
	}
	if err != nil {
		return nil, apperror.Internal("Error verifying OTP", err)
	}
	if otp == nil || otp.Expired(s.now()) {
		return nil, apperror.ErrExpiredOrInvalidOtp
	}
	return otp, nil
}
