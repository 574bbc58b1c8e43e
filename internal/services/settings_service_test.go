package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gold-pos/internal/cache"
	"gold-pos/internal/models"
)

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		store.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)

		got, err := NewSettingsService(store, nil).Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("old document is upgraded and written back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		store.EXPECT().Get(gomock.Any()).Return(&models.AppSettings{ShopName: "QIZIL"}, nil)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *models.AppSettings) error {
				assert.Equal(t, models.SettingsVersion, s.Version)
				return nil
			})

		got, err := NewSettingsService(store, nil).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "QIZIL", got.ShopName)
		assert.Equal(t, 400.0, got.PricePerGram)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		cache := NewMockSettingsCache(ctrl)
		cached := models.DefaultSettings()
		cache.EXPECT().Get(gomock.Any()).Return(&cached, nil)

		got, err := NewSettingsService(store, cache).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "NEKO GOLD", got.ShopName)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		cache := NewMockSettingsCache(ctrl)
		stored := models.DefaultSettings()
		cache.EXPECT().Get(gomock.Any()).Return(nil, errors.New("connection refused"))
		store.EXPECT().Get(gomock.Any()).Return(&stored, nil)
		cache.EXPECT().Set(gomock.Any(), &stored).Return(nil)

		got, err := NewSettingsService(store, cache).Get(ctx)
		require.NoError(t, err)
		assert.Same(t, &stored, got)
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		store.EXPECT().Get(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := NewSettingsService(store, nil).Get(ctx)
		assert.ErrorContains(t, err, "db down")
	})
}

func TestSettingsService_Effective(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockSettingsStore(ctrl)
	store.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)

	got, err := NewSettingsService(store, nil).Effective(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestSettingsService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("drops the cached copy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		cache := NewMockSettingsCache(ctrl)

		s := &models.AppSettings{ShopName: "QIZIL"}
		gomock.InOrder(
			store.EXPECT().Save(gomock.Any(), s).Return(nil),
			cache.EXPECT().Invalidate(gomock.Any()).Return(nil),
		)

		require.NoError(t, NewSettingsService(store, cache).Save(ctx, s))
		assert.Equal(t, models.SettingsVersion, s.Version)
		assert.Empty(t, s.Suppliers)
	})

	t.Run("cache failure does not fail the save", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		cache := NewMockSettingsCache(ctrl)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Invalidate(gomock.Any()).Return(errors.New("connection refused"))

		assert.NoError(t, NewSettingsService(store, cache).Save(ctx, &models.AppSettings{}))
	})

	t.Run("store failure keeps the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := NewMockSettingsStore(ctrl)
		cache := NewMockSettingsCache(ctrl)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := NewSettingsService(store, cache).Save(ctx, &models.AppSettings{})
		assert.ErrorContains(t, err, "db down")
	})
}

func TestSettingsService_SaveReplacesRedisCopy(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client, err := cache.New(ctx, mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctrl := gomock.NewController(t)
	store := NewMockSettingsStore(ctrl)
	svc := NewSettingsService(store, cache.NewSettingsCache(client, time.Minute))

	before := models.DefaultSettings()
	store.EXPECT().Get(gomock.Any()).Return(&before, nil)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEKO GOLD", got.ShopName)
	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEKO GOLD", got.ShopName)

	after := models.DefaultSettings()
	after.ShopName = "QIZIL EV"
	store.EXPECT().Save(gomock.Any(), &after).Return(nil)
	require.NoError(t, svc.Save(ctx, &after))
	assert.False(t, mr.Exists("gold-pos:settings"))

	store.EXPECT().Get(gomock.Any()).Return(&after, nil)
	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "QIZIL EV", got.ShopName)
}
