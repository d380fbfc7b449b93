package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/flowershop/internal/app"
	"github.com/polkiloo/flowershop/internal/config"
	"github.com/polkiloo/flowershop/internal/logger"
	"github.com/polkiloo/flowershop/internal/metrics"
	"github.com/polkiloo/flowershop/internal/pkg/auth"
	"github.com/polkiloo/flowershop/internal/server/http/router"
	"github.com/polkiloo/flowershop/internal/storage/postgres"
	"github.com/polkiloo/flowershop/internal/storage/redis"
	"github.com/polkiloo/flowershop/internal/usecase"
)

// Module assembles the whole application graph. opts are appended last so
// tests can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		fx.Provide(
			func(m *metrics.Metrics) usecase.LedgerRecorder { return m },
			func(s *postgres.Storage) app.HealthChecker { return s },
		),
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
