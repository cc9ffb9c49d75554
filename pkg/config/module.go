package config

import "go.uber.org/fx"

// Module supplies an already resolved Config and the Settings derived from it
func Module(cfg *Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(NewSettings),
	)
}
