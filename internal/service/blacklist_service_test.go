package service

import (
	"context"
	"errors"
	"testing"

	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlacklistRevoke(t *testing.T) {
	tests := []struct {
		name     string
		addErr   error
		wantKind apperror.Kind
		wantErr  bool
	}{
		{name: "fresh token"},
		{name: "already revoked", addErr: contract.ErrDuplicateToken},
		{name: "store failure", addErr: errors.New("redis down"), wantErr: true, wantKind: apperror.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockTokenBlacklistRepository{}
			repo.On("Add", mock.Anything, "tok").Return(tt.addErr)

			err := NewBlacklistService(repo).Revoke(context.Background(), "tok")
			if tt.wantErr {
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				return
			}
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestBlacklistIsRevoked(t *testing.T) {
	repo := &mocks.MockTokenBlacklistRepository{}
	repo.On("Exists", mock.Anything, "tok").Return(true, nil)
	svc := NewBlacklistService(repo)

	revoked, err := svc.IsRevoked(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsRevoked(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, revoked)
	repo.AssertNumberOfCalls(t, "Exists", 1)
}
