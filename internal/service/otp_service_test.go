package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/memory"
	"sticky-notes-be/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestOtpService() (*otpService, *fakeMailer) {
	mailer := newFakeMailer()
	svc := NewOtpService(memory.NewOtpRepository(), mailer, logger.NewNopLogger()).(*otpService)
	return svc, mailer
}

func TestGenerateOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestOtpIssueAndVerify(t *testing.T) {
	svc, mailer := newTestOtpService()
	ctx := context.Background()

	code, err := svc.Issue(ctx, "  A@X.com ")
	require.NoError(t, err)
	assert.Equal(t, code, mailer.last("a@x.com"))

	email, err := svc.Verify(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	_, err = svc.Verify(ctx, code)
	assert.ErrorIs(t, err, apperror.ErrExpiredOrInvalidOtp)
}

func TestOtpSecondIssueInvalidatesFirst(t *testing.T) {
	svc, _ := newTestOtpService()
	codes := []string{"111111", "222222"}
	svc.generate = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}
	ctx := context.Background()

	first, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, first)
	assert.ErrorIs(t, err, apperror.ErrExpiredOrInvalidOtp)

	email, err := svc.Verify(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestOtpExpiredCodeIsRemoved(t *testing.T) {
	svc, _ := newTestOtpService()
	ctx := context.Background()

	code, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(OtpTTL + time.Minute) }

	_, err = svc.Verify(ctx, code)
	assert.ErrorIs(t, err, apperror.ErrExpiredOrInvalidOtp)

	svc.now = time.Now
	_, err = svc.Verify(ctx, code)
	assert.ErrorIs(t, err, apperror.ErrExpiredOrInvalidOtp)
}

func TestOtpVerifyForChecksEmail(t *testing.T) {
	svc, _ := newTestOtpService()
	ctx := context.Background()

	code, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyFor(ctx, "b@x.com", code)
	assert.ErrorIs(t, err, apperror.ErrExpiredOrInvalidOtp)

	// a mistyped email leaves the owner's code usable
	email, err := svc.VerifyFor(ctx, "A@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	_, err = svc.VerifyFor(ctx, "a@x.com", code)
	assert.ErrorIs(t, err, apperror.ErrExpiredOrInvalidOtp)

	_, err = svc.VerifyFor(ctx, " ", code)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestOtpIssueRetriesOnCollision(t *testing.T) {
	repo := &mocks.MockOtpRepository{}
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(o *entity.Otp) bool { return o.Code == "111111" })).
		Return(contract.ErrOtpCodeInUse).Once()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(o *entity.Otp) bool { return o.Code == "222222" })).
		Return(nil).Once()

	mailer := newFakeMailer()
	svc := NewOtpService(repo, mailer, logger.NewNopLogger()).(*otpService)
	codes := []string{"111111", "222222"}
	svc.generate = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	code, err := svc.Issue(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
	assert.Equal(t, "222222", mailer.last("b@x.com"))
	repo.AssertExpectations(t)
}

func TestOtpIssueGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &mocks.MockOtpRepository{}
	repo.On("Upsert", mock.Anything, mock.Anything).Return(contract.ErrOtpCodeInUse)

	svc := NewOtpService(repo, newFakeMailer(), logger.NewNopLogger())

	_, err := svc.Issue(context.Background(), "b@x.com")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	repo.AssertNumberOfCalls(t, "Upsert", otpIssueAttempts)
}

func TestOtpIssueMailFailure(t *testing.T) {
	svc, mailer := newTestOtpService()
	mailer.err = errors.New("smtp down")

	_, err := svc.Issue(context.Background(), "a@x.com")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestOtpRejectsEmptyInput(t *testing.T) {
	svc, _ := newTestOtpService()
	ctx := context.Background()

	_, err := svc.Issue(ctx, " ")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.Verify(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestOtpStoreFailure(t *testing.T) {
	repo := &mocks.MockOtpRepository{}
	repo.On("Take", mock.Anything, "123456").Return(nil, errors.New("redis down"))

	svc := NewOtpService(repo, newFakeMailer(), logger.NewNopLogger())

	_, err := svc.Verify(context.Background(), "123456")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestOtpVerifyForUsesScopedTake(t *testing.T) {
	repo := &mocks.MockOtpRepository{}
	repo.On("TakeFor", mock.Anything, "123456", "a@x.com").
		Return(&entity.Otp{Email: "a@x.com", Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}, nil)

	svc := NewOtpService(repo, newFakeMailer(), logger.NewNopLogger())

	email, err := svc.VerifyFor(context.Background(), "A@x.com ", "123456")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
	repo.AssertNotCalled(t, "Take", mock.Anything, mock.Anything)
}
