package server

import (
	"context"

	"github.com/himakhaitan/redis-lite/engine"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the RESP listener and the optional admin HTTP server wired with fx
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewTCPServer),
		fx.Provide(NewAdminMux),
		fx.Provide(NewAdminServer),
		fx.Invoke(RegisterHooks),
		engine.Module(),
	)
}

// RegisterHooks starts and stops the servers using fx Lifecycle.
// The admin server is skipped when it is not configured.
func RegisterHooks(lc fx.Lifecycle, tcp *TCPServer, admin *AdminServer, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting redis-lite server")
			return tcp.Start()
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping redis-lite server")
			return tcp.Stop(ctx)
		},
	})

	if admin == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return admin.Start()
		},
		OnStop: func(ctx context.Context) error {
			return admin.Stop(ctx)
		},
	})
}
