package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/flowershop/internal/config"
)

// Module provides the password hasher and the session token strategy.
var Module = fx.Provide(hasherFromConfig, strategyFromConfig)

func hasherFromConfig(cfg *config.Config) PasswordHasher {
	return NewBcryptHasher(cfg.PasswordCost)
}

func strategyFromConfig(cfg *config.Config) Strategy {
	return NewJWTStrategy(cfg.TokenSecret, Options{})
}
