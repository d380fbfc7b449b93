package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/flowershop/internal/config"
	"github.com/polkiloo/flowershop/internal/server/http/handlers"
)

// Module wires the shop facade, HTTP server and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewShopFacade,
		func(f *ShopFacade) handlers.ShopFacade { return f },
		func(f *ShopFacade) adminBootstrapper { return f },
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type adminBootstrapper interface {
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Admin      adminBootstrapper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			bootstrapAdmin(ctx, p.Admin, p.Config, p.Logger)

			p.Logger.Info("starting flowershop", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("flowershop stopped")
			return nil
		},
	})
}

// bootstrapAdmin never fails startup; a broken admin account is reported and skipped.
func bootstrapAdmin(ctx context.Context, admin adminBootstrapper, cfg *config.Config, logger *slog.Logger) {
	if !cfg.AdminConfigured() {
		return
	}

	created, err := admin.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("admin bootstrap failed",
			slog.String("username", cfg.AdminName),
			slog.String("error", err.Error()),
		)
		return
	}
	if created {
		logger.Info("admin account created", slog.String("username", cfg.AdminName))
	}
}
