// Package memory holds in-process stand-ins for the Redis repositories, used
// when no Redis is configured. Records expire through go-cache item TTLs.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type OtpRepository struct {
	mu     sync.Mutex
	codes  *cache.Cache // code -> entity.Otp
	emails *cache.Cache // email -> code
}

func NewOtpRepository() *OtpRepository {
	return &OtpRepository{
		codes:  cache.New(cache.NoExpiration, time.Minute),
		emails: cache.New(cache.NoExpiration, time.Minute),
	}
}

func (r *OtpRepository) Upsert(ctx context.Context, otp *entity.Otp) error {
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp for %s already expired", otp.Email)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.codes.Get(otp.Code); found {
		return contract.ErrOtpCodeInUse
	}
	if prev, found := r.emails.Get(otp.Email); found {
		r.codes.Delete(prev.(string))
	}

	r.codes.Set(otp.Code, *otp, ttl)
	r.emails.Set(otp.Email, otp.Code, ttl)
	return nil
}

func (r *OtpRepository) Take(ctx context.Context, code string) (*entity.Otp, error) {
	return r.take(code, "")
}

func (r *OtpRepository) TakeFor(ctx context.Context, code, email string) (*entity.Otp, error) {
	if email == "" {
		return nil, nil
	}
	return r.take(code, email)
}

func (r *OtpRepository) take(code, email string) (*entity.Otp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.codes.Get(code)
	if !found {
		return nil, nil
	}
	otp := x.(entity.Otp)
	if email != "" && otp.Email != email {
		return nil, nil
	}
	r.codes.Delete(code)

	if current, found := r.emails.Get(otp.Email); found && current.(string) == code {
		r.emails.Delete(otp.Email)
	}
	return &otp, nil
}
