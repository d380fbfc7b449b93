package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
)

const keyPrefix = "flowershop:flower:"

type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// LookupRecorder observes cache effectiveness.
type LookupRecorder interface {
	RecordCacheLookup(hit bool)
}

// FlowerCache keeps catalog entries in Redis as JSON under a name key.
type FlowerCache struct {
	client   client
	ttl      time.Duration
	logger   *slog.Logger
	recorder LookupRecorder
}

// NewFlowerCache wraps client. recorder may be nil.
func NewFlowerCache(c client, ttl time.Duration, logger *slog.Logger, recorder LookupRecorder) *FlowerCache {
	return &FlowerCache{client: c, ttl: ttl, logger: logger, recorder: recorder}
}

func key(name string) string {
	return keyPrefix + name
}

// Get returns the cached flower. Transport and decoding failures count as a miss.
func (c *FlowerCache) Get(ctx context.Context, name string) (*model.Flower, bool) {
	flower, err := c.get(ctx, name)
	if err != nil && !errors.Is(err, goredis.Nil) {
		c.logger.Warn("catalog cache read failed", slog.String("flower", name), slog.String("error", err.Error()))
	}
	hit := err == nil
	if c.recorder != nil {
		c.recorder.RecordCacheLookup(hit)
	}
	return flower, hit
}

func (c *FlowerCache) get(ctx context.Context, name string) (*model.Flower, error) {
	raw, err := c.client.Get(ctx, key(name)).Bytes()
	if err != nil {
		return nil, err
	}
	var flower model.Flower
	if err := json.Unmarshal(raw, &flower); err != nil {
		return nil, err
	}
	return &flower, nil
}

// Set stores flower for the configured TTL.
func (c *FlowerCache) Set(ctx context.Context, flower model.Flower) error {
	data, err := json.Marshal(flower)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(flower.Name), data, c.ttl).Err()
}

// Ping checks that Redis answers.
func (c *FlowerCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (c *FlowerCache) Close() error {
	return c.client.Close()
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*model.Flower, bool) { return nil, false }
func (nopCache) Set(context.Context, model.Flower) error           { return nil }

var (
	_ repository.FlowerCache = (*FlowerCache)(nil)
	_ repository.FlowerCache = nopCache{}
)
