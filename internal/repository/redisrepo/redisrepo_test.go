package redisrepo

import (
	"context"
	"testing"
	"time"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/repository/contract"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newOtp(email, code string) *entity.Otp {
	return &entity.Otp{Email: email, Code: code, ExpiresAt: time.Now().Add(5 * time.Minute)}
}

func TestOtpRepository_UpsertAndTake(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewOtpRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newOtp("a@x.com", "123456")))

	got, err := repo.Take(ctx, "123456")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "123456", got.Code)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), got.ExpiresAt, 2*time.Second)

	// single use
	got, err = repo.Take(ctx, "123456")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOtpRepository_NewCodeInvalidatesPrevious(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewOtpRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newOtp("a@x.com", "111111")))
	require.NoError(t, repo.Upsert(ctx, newOtp("a@x.com", "222222")))

	assert.False(t, mr.Exists(otpCodeKeyPrefix+"111111"))

	old, err := repo.Take(ctx, "111111")
	require.NoError(t, err)
	assert.Nil(t, old)

	current, err := repo.Take(ctx, "222222")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "a@x.com", current.Email)
	assert.False(t, mr.Exists(otpEmailKeyPrefix+"a@x.com"))
}

func TestOtpRepository_CodeCollisionAcrossEmails(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewOtpRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newOtp("a@x.com", "123456")))
	err := repo.Upsert(ctx, newOtp("b@x.com", "123456"))
	assert.ErrorIs(t, err, contract.ErrOtpCodeInUse)

	got, err := repo.Take(ctx, "123456")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestOtpRepository_TakeForOtherEmailKeepsCode(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewOtpRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newOtp("a@x.com", "123456")))

	got, err := repo.TakeFor(ctx, "123456", "typo@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, mr.Exists(otpCodeKeyPrefix+"123456"))
	assert.True(t, mr.Exists(otpEmailKeyPrefix+"a@x.com"))

	got, err = repo.TakeFor(ctx, "123456", "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)
	assert.False(t, mr.Exists(otpCodeKeyPrefix+"123456"))
}

func TestOtpRepository_ExpiresWithKeyTTL(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewOtpRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newOtp("a@x.com", "123456")))
	mr.FastForward(5*time.Minute + time.Second)

	got, err := repo.Take(ctx, "123456")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOtpRepository_RejectsExpiredRecord(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewOtpRepository(client)

	otp := &entity.Otp{Email: "a@x.com", Code: "123456", ExpiresAt: time.Now().Add(-time.Second)}
	assert.Error(t, repo.Upsert(context.Background(), otp))
}

func TestTokenBlacklistRepository(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewTokenBlacklistRepository(client)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Add(ctx, "tok"))
	assert.ErrorIs(t, repo.Add(ctx, "tok"), contract.ErrDuplicateToken)

	exists, err = repo.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, BlacklistTTL, mr.TTL(blacklistKeyPrefix+"tok"))

	mr.FastForward(BlacklistTTL + time.Second)
	exists, err = repo.Exists(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, exists)
}
