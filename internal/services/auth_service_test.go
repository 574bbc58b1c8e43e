package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gold-pos/internal/auth"
	"gold-pos/internal/models"
)

func TestAuthService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	expires := fixedNow.Add(12 * time.Hour)

	t.Run("correct password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		tokens := NewMockTokenIssuer(ctrl)
		store.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)
		tokens.EXPECT().Issue(auth.RoleAdmin).Return("signed", expires, nil)

		got, err := NewAuthService(NewSettingsService(store, nil), tokens).AdminLogin(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "signed", got.Token)
		assert.Equal(t, expires, got.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		store.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)

		_, err := NewAuthService(NewSettingsService(store, nil), NewMockTokenIssuer(ctrl)).AdminLogin(ctx, "guess")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyDeleteCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockSettingsStore(ctrl)
	stored := models.DefaultSettings()
	stored.DeleteCode = "9876"
	store.EXPECT().Get(gomock.Any()).Return(&stored, nil).Times(3)

	svc := NewAuthService(NewSettingsService(store, nil), NewMockTokenIssuer(ctrl))
	assert.NoError(t, svc.VerifyDeleteCode(context.Background(), "9876"))
	assert.ErrorIs(t, svc.VerifyDeleteCode(context.Background(), "1234"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyDeleteCode(context.Background(), ""), ErrInvalidCredentials)
}
