package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user          *model.User
	stored        *model.RefreshToken
	findTokenErr  error
	saved         *model.RefreshToken
	deleted       []string
	expiredSweeps int
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	s.saved = token
	return nil
}

func (s *stubUserRepo) FindRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	if s.findTokenErr != nil {
		return nil, s.findTokenErr
	}
	return s.stored, nil
}

func (s *stubUserRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	return nil
}

func (s *stubUserRepo) DeleteExpiredRefreshTokens(ctx context.Context) error {
	s.expiredSweeps++
	return nil
}

func TestAuthRefresh(t *testing.T) {
	user := &model.User{ID: uuid.New(), TenantID: uuid.New(), Role: model.RoleOwner}

	t.Run("rotates the token and sweeps expired rows", func(t *testing.T) {
		users := &stubUserRepo{
			user: user,
			stored: &model.RefreshToken{
				UserID:    user.ID,
				Token:     "old-token",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		}
		svc := NewAuthService(users, &stubTenantRepo{})

		tokens, err := svc.Refresh(context.Background(), "old-token")
		require.NoError(t, err)

		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotEqual(t, "old-token", tokens.RefreshToken)
		assert.Contains(t, users.deleted, "old-token")
		assert.Equal(t, tokens.RefreshToken, users.saved.Token)
		assert.Equal(t, 1, users.expiredSweeps)
	})

	t.Run("expired token is rejected and removed", func(t *testing.T) {
		users := &stubUserRepo{
			user: user,
			stored: &model.RefreshToken{
				UserID:    user.ID,
				Token:     "stale-token",
				ExpiresAt: time.Now().Add(-time.Minute),
			},
		}
		svc := NewAuthService(users, &stubTenantRepo{})

		_, err := svc.Refresh(context.Background(), "stale-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Contains(t, users.deleted, "stale-token")
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		users := &stubUserRepo{findTokenErr: gorm.ErrRecordNotFound}
		svc := NewAuthService(users, &stubTenantRepo{})

		_, err := svc.Refresh(context.Background(), "never-issued")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
