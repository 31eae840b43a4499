package professionalRepo

import (
	"context"
	"testing"
	"time"

	"velora/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	settings map[string]*models.LastMinuteSettings
	reads    int
}

func (s *stubRepo) GetByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	return nil, ErrNotFound
}

func (s *stubRepo) GetOffering(ctx context.Context, offeringID string) (*models.Offering, error) {
	return nil, ErrNotFound
}

func (s *stubRepo) GetLastMinuteSettings(ctx context.Context, professionalID string) (*models.LastMinuteSettings, error) {
	s.reads++
	if settings, ok := s.settings[professionalID]; ok {
		return settings, nil
	}
	return nil, ErrNotFound
}

func TestCachedSettingsSource(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	stub := &stubRepo{settings: map[string]*models.LastMinuteSettings{
		"pro-1": {Enabled: true, DiscountsEnabled: true, WindowSameDayPct: 25},
	}}
	cache := NewCachedSettingsSource(stub, client, time.Hour)
	ctx := context.Background()

	t.Run("MissPopulatesCache", func(t *testing.T) {
		got, err := cache.Get(ctx, "pro-1")
		require.NoError(t, err)
		assert.True(t, got.Enabled)
		assert.Equal(t, 25, got.WindowSameDayPct)
		assert.Equal(t, 1, stub.reads)

		got, err = cache.Get(ctx, "pro-1")
		require.NoError(t, err)
		assert.Equal(t, 25, got.WindowSameDayPct)
		assert.Equal(t, 1, stub.reads, "second read must come from the cache")
	})

	t.Run("InvalidateForcesRepoRead", func(t *testing.T) {
		stub.settings["pro-1"].WindowSameDayPct = 40
		require.NoError(t, cache.Invalidate(ctx, "pro-1"))

		got, err := cache.Get(ctx, "pro-1")
		require.NoError(t, err)
		assert.Equal(t, 40, got.WindowSameDayPct)
		assert.Equal(t, 2, stub.reads)
	})

	t.Run("UnknownProfessional", func(t *testing.T) {
		_, err := cache.Get(ctx, "pro-missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UnparseableEntryDropped", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, settingsCachePrefix+"pro-1", "{garbage", time.Hour).Err())

		got, err := cache.Get(ctx, "pro-1")
		require.NoError(t, err)
		assert.Equal(t, 40, got.WindowSameDayPct)
	})
}
