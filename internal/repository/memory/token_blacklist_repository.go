package memory

import (
	"context"
	"time"

	"sticky-notes-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type TokenBlacklistRepository struct {
	cache *cache.Cache
}

func NewTokenBlacklistRepository(ttl time.Duration) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *TokenBlacklistRepository) Add(ctx context.Context, token string) error {
	if err := r.cache.Add(token, time.Now(), cache.DefaultExpiration); err != nil {
		return contract.ErrDuplicateToken
	}
	return nil
}

func (r *TokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	_, found := r.cache.Get(token)
	return found, nil
}
