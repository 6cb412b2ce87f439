package service

import (
	"context"
	"errors"

	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/repository/contract"
)

type IBlacklistService interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type blacklistService struct {
	repo contract.TokenBlacklistRepository
}

func NewBlacklistService(repo contract.TokenBlacklistRepository) IBlacklistService {
	return &blacklistService{repo: repo}
}

// Revoke is idempotent: revoking an already revoked token succeeds.
func (s *blacklistService) Revoke(ctx context.Context, token string) error {
	err := s.repo.Add(ctx, token)
	if err == nil || errors.Is(err, contract.ErrDuplicateToken) {
		return nil
	}
	return apperror.Internal("Internal Server Error", err)
}

func (s *blacklistService) IsRevoked(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	revoked, err := s.repo.Exists(ctx, token)
	if err != nil {
		return false, apperror.Internal("Internal Server Error", err)
	}
	return revoked, nil
}
