package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quickfiss/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// cachedUser is the cache wire form of models.User. The model hides
// the password hash and token version from API JSON with `json:"-"`,
// so caching the model directly would drop them on the round trip and
// kill every session on the first cache hit. The cache gets its own
// representation with every field spelled out.
type cachedUser struct {
	ID           uint        `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Role         models.Role `json:"role"`
	IsActive     bool        `json:"is_active"`
	IsStaff      bool        `json:"is_staff"`
	TokenVersion int         `json:"token_version"`
}

func toCachedUser(user *models.User) *cachedUser {
	return &cachedUser{
		ID:           user.ID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		Email:        user.Email,
		Password:     user.Password,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
		TokenVersion: user.TokenVersion,
	}
}

func (c *cachedUser) toModel() *models.User {
	user := &models.User{
		Email:        c.Email,
		Password:     c.Password,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         c.Role,
		IsActive:     c.IsActive,
		IsStaff:      c.IsStaff,
		TokenVersion: c.TokenVersion,
	}
	user.ID = c.ID
	user.CreatedAt = c.CreatedAt
	user.UpdatedAt = c.UpdatedAt
	return user
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}

	cached := toCachedUser(user)
	for _, key := range keys {
		if err := s.Set(ctx, key, cached); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var cached cachedUser
	found, err := s.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return cached.toModel(), nil
}

// GetUserByEmail looks up a cached user through the email key written
// by CacheUser.
func (s *CacheService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.GetUser(ctx, s.GenerateKey("user", "email", email))
}

// InvalidateUser removes every cache key pointing at a user. Safe to
// call when the user was never cached.
func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	user, err := s.GetUser(ctx, s.GenerateKey("user", "id", userID))
	if err != nil {
		return s.Delete(ctx, s.GenerateKey("user", "id", userID))
	}

	return s.Delete(ctx,
		s.GenerateKey("user", "id", userID),
		s.GenerateKey("user", "email", user.Email),
	)
}

// InvalidateUserEmail clears a lookup-by-email entry without needing
// the cached record to exist.
func (s *CacheService) InvalidateUserEmail(ctx context.Context, email string) error {
	return s.Delete(ctx, s.GenerateKey("user", "email", email))
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
