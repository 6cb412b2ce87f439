package redisrepo

import (
	"context"
	"fmt"
	"time"

	"sticky-notes-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	blacklistKeyPrefix = "blacklist:"

	// BlacklistTTL outlives the 1h token lifetime by a wide margin.
	BlacklistTTL = 7 * 24 * time.Hour
)

type TokenBlacklistRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewTokenBlacklistRepository(client redis.UniversalClient) contract.TokenBlacklistRepository {
	return &TokenBlacklistRepository{client: client, ttl: BlacklistTTL}
}

func (r *TokenBlacklistRepository) Add(ctx context.Context, token string) error {
	added, err := r.client.SetNX(ctx, blacklistKeyPrefix+token, time.Now().Unix(), r.ttl).Result()
	if err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	if !added {
		return contract.ErrDuplicateToken
	}
	return nil
}

func (r *TokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}
