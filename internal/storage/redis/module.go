package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/flowershop/internal/config"
	"github.com/polkiloo/flowershop/internal/domain/repository"
	"github.com/polkiloo/flowershop/internal/metrics"
)

// Module provides the catalog cache. Without a configured address the cache is disabled.
var Module = fx.Provide(newCache)

var newClient = func(opts *goredis.Options) client {
	return goredis.NewClient(opts)
}

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

func newCache(p cacheParams) repository.FlowerCache {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("catalog cache disabled")
		return nopCache{}
	}

	var recorder LookupRecorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	cache := NewFlowerCache(newClient(&goredis.Options{
		Addr:     p.Config.RedisAddress,
		Password: p.Config.RedisPassword,
	}), p.Config.CatalogCacheTTL, p.Logger, recorder)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cache.Ping(ctx); err != nil {
				p.Logger.Warn("catalog cache unreachable", slog.String("addr", p.Config.RedisAddress), slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
	return cache
}
