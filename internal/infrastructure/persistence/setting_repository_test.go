package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestGormSettingRepository_SetAndGet(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, catalog.SettingLogoURL, "https://cdn.example.com/logo.png"))

	value, err := repo.Get(ctx, catalog.SettingLogoURL)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo.png", value)
}

func TestGormSettingRepository_SetOverwrites(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, catalog.SettingHeroVideoURL, "https://cdn.example.com/a.mp4"))
	require.NoError(t, repo.Set(ctx, catalog.SettingHeroVideoURL, "https://cdn.example.com/b.mp4"))

	value, err := repo.Get(ctx, catalog.SettingHeroVideoURL)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/b.mp4", value)
}

func TestGormSettingRepository_Set_EmptyKey(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingRepository(db.DB)

	err := repo.Set(context.Background(), "", "value")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestGormSettingRepository_Get_Missing(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingRepository(db.DB)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
