package engine

import (
	"github.com/himakhaitan/redis-lite/pkg/metrics"
	"github.com/himakhaitan/redis-lite/rdb"
	"github.com/himakhaitan/redis-lite/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			func(logger *zap.Logger) *store.Store { return store.New(logger) },
			func(logger *zap.Logger) *rdb.Loader { return rdb.NewLoader(logger) },
			NewDB,
		),
		fx.Invoke(registerGauges),
		fx.Invoke(loadSnapshot),
	)
}

func registerGauges(s *store.Store, m *metrics.Metrics) {
	m.RegisterGauge("redislite_keys", func() float64 {
		return float64(s.Len())
	})
}
