// Package cache keeps read-mostly catalog data and revoked session ids in
// redis. A nil *Cache is valid and behaves as an always-missing cache, so the
// service runs without redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gamecenter/models"
	"gamecenter/shop"

	"github.com/redis/go-redis/v9"
)

const (
	GamesKey         = "games:all"
	GamePrefix       = "game:"
	RevokedPrefix    = "session:revoked:"
	GamesTTL         = 5 * time.Minute
	GameTTL          = time.Hour
	operationTimeout = 3 * time.Second
)

type Cache struct {
	client *redis.Client
}

// Connect dials redis and checks the connection with a ping.
func Connect(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  operationTimeout,
		WriteTimeout: operationTimeout,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return New(client), nil
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("redis not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Get decodes the JSON value stored under key into dest. It reports false
// on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Games returns the cached catalog listing.
func (c *Cache) Games(ctx context.Context) ([]models.Game, bool, error) {
	var games []models.Game
	ok, err := c.Get(ctx, GamesKey, &games)
	return games, ok, err
}

func (c *Cache) SetGames(ctx context.Context, games []models.Game) error {
	return c.Set(ctx, GamesKey, games, GamesTTL)
}

// GameView returns the cached session-independent part of a game page.
func (c *Cache) GameView(ctx context.Context, gameID uint) (*shop.GameView, bool, error) {
	var view shop.GameView
	ok, err := c.Get(ctx, gameKey(gameID), &view)
	if !ok || err != nil {
		return nil, false, err
	}
	return &view, true, nil
}

func (c *Cache) SetGameView(ctx context.Context, view *shop.GameView) error {
	return c.Set(ctx, gameKey(view.Game.ID), view, GameTTL)
}

// InvalidateGame drops the game page and the catalog listing.
func (c *Cache) InvalidateGame(ctx context.Context, gameID uint) error {
	return c.Delete(ctx, gameKey(gameID), GamesKey)
}

func (c *Cache) InvalidateGames(ctx context.Context) error {
	return c.Delete(ctx, GamesKey)
}

// Revoke stores tokenID until its expiry, which makes Cache an auth.Revoker
// shared between instances.
func (c *Cache) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if c == nil {
		return errors.New("redis not configured")
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, RevokedPrefix+tokenID, 1, ttl).Err()
}

func (c *Cache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if c == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, RevokedPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}

func gameKey(id uint) string {
	return fmt.Sprintf("%s%d", GamePrefix, id)
}
