package repositories

import (
	"context"
	"testing"
	"time"

	"quickfiss/internal/models"
	"quickfiss/internal/repositories/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWarmedRepo(t *testing.T, user *models.User) UserRepository {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cacheService := cache.NewCacheService(client, time.Hour)
	require.NoError(t, cacheService.CacheUser(context.Background(), user))

	// db is nil on purpose: a cache hit must answer without touching
	// the database at all.
	return NewUserRepository(nil, cacheService)
}

func cachedSampleUser() *models.User {
	u := &models.User{
		Email:        "jane@x.com",
		Password:     "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleClient,
		IsActive:     true,
		TokenVersion: 4,
	}
	u.ID = 7
	return u
}

func TestGetByIDServedFromCache(t *testing.T) {
	repo := newWarmedRepo(t, cachedSampleUser())

	got, err := repo.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", got.Password)
	assert.Equal(t, 4, got.TokenVersion)
}

func TestGetByEmailServedFromCache(t *testing.T) {
	repo := newWarmedRepo(t, cachedSampleUser())

	got, err := repo.GetByEmail("jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, 4, got.TokenVersion)
}

// The auth middleware reads the token version on every request; after
// the first request warms the cache the stored version must survive
// the cache round trip or every session dies on its second request.
func TestGetTokenVersionSurvivesCacheHit(t *testing.T) {
	repo := newWarmedRepo(t, cachedSampleUser())

	version, err := repo.GetTokenVersion(7)
	require.NoError(t, err)
	assert.Equal(t, 4, version)
}
