// Package redisrepo keeps the short-lived auth records (OTP codes, revoked
// tokens) in Redis and relies on key expiry to purge them.
package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	otpCodeKeyPrefix  = "otp:code:"
	otpEmailKeyPrefix = "otp:email:"
)

// KEYS[1] email key, KEYS[2] code key
// ARGV[1] email, ARGV[2] code, ARGV[3] ttl ms, ARGV[4] code key prefix
var upsertOtpScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
  return 0
end
local prev = redis.call('GET', KEYS[1])
if prev then
  redis.call('DEL', ARGV[4] .. prev)
end
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[3])
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// KEYS[1] code key
// ARGV[1] email key prefix, ARGV[2] code, ARGV[3] expected email ("" for any)
var takeOtpScript = redis.NewScript(`
local email = redis.call('GET', KEYS[1])
if not email then
  return false
end
if ARGV[3] ~= '' and email ~= ARGV[3] then
  return false
end
local ttl = redis.call('PTTL', KEYS[1])
redis.call('DEL', KEYS[1])
local emailKey = ARGV[1] .. email
if redis.call('GET', emailKey) == ARGV[2] then
  redis.call('DEL', emailKey)
end
return {email, ttl}
`)

type OtpRepository struct {
	client redis.UniversalClient
}

func NewOtpRepository(client redis.UniversalClient) contract.OtpRepository {
	return &OtpRepository{client: client}
}

func (r *OtpRepository) Upsert(ctx context.Context, otp *entity.Otp) error {
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp for %s already expired", otp.Email)
	}

	stored, err := upsertOtpScript.Run(ctx, r.client,
		[]string{otpEmailKeyPrefix + otp.Email, otpCodeKeyPrefix + otp.Code},
		otp.Email, otp.Code, ttl.Milliseconds(), otpCodeKeyPrefix,
	).Int()
	if err != nil {
		return fmt.Errorf("upsert otp: %w", err)
	}
	if stored == 0 {
		return contract.ErrOtpCodeInUse
	}
	return nil
}

func (r *OtpRepository) Take(ctx context.Context, code string) (*entity.Otp, error) {
	return r.take(ctx, code, "")
}

func (r *OtpRepository) TakeFor(ctx context.Context, code, email string) (*entity.Otp, error) {
	if email == "" {
		return nil, nil
	}
	return r.take(ctx, code, email)
}

func (r *OtpRepository) take(ctx context.Context, code, email string) (*entity.Otp, error) {
	res, err := takeOtpScript.Run(ctx, r.client,
		[]string{otpCodeKeyPrefix + code},
		otpEmailKeyPrefix, code, email,
	).Slice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("take otp: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("take otp: unexpected reply %v", res)
	}

	email, _ = res[0].(string)
	ttlMs, _ := res[1].(int64)

	return &entity.Otp{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(time.Duration(ttlMs) * time.Millisecond),
	}, nil
}
