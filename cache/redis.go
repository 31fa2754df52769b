// Package cache holds the session profile cache. It stands in for the
// locally persisted current-user record: the signed-in user's profile is
// read through it and dropped whenever the profile changes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"kovan/models"
)

// ErrMiss is returned when the profile is not cached.
var ErrMiss = errors.New("cache miss")

const profileTTL = 10 * time.Minute

type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	SetProfile(ctx context.Context, user *models.User) error
	Invalidate(ctx context.Context, userID string) error
}

type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, addr, password string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Println("Redis connected successfully")
	return &Redis{client: client}, nil
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (r *Redis) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	result, err := r.client.Get(ctx, profileKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Redis) SetProfile(ctx context.Context, user *models.User) error {
	// PasswordHash is json:"-" and never reaches the cache.
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey(user.ID), data, profileTTL).Err()
}

func (r *Redis) Invalidate(ctx context.Context, userID string) error {
	return r.client.Del(ctx, profileKey(userID)).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Nop caches nothing; every read misses.
type Nop struct{}

func (Nop) GetProfile(context.Context, string) (*models.User, error) { return nil, ErrMiss }
func (Nop) SetProfile(context.Context, *models.User) error           { return nil }
func (Nop) Invalidate(context.Context, string) error                 { return nil }
