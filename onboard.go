// Package onboard provides the MangoMarket email-OTP account provisioning
// service: a two-phase signup flow that emails a time-limited 6-digit code
// and later consumes it, exactly once, to create the durable account.
package onboard

import (
	"github.com/mangomarket/onboard/app"
	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/internal/options"
	"go.uber.org/fx"
)

type App = app.App

func New(opts ...options.Option) (*App, error) {
	o := &options.Options{}
	for _, opt := range opts {
		opt(o)
	}

	builder := app.NewApp()
	if o.Config != nil {
		builder.WithConfig(o.Config)
	}
	if len(o.DatabaseModels) > 0 {
		builder.WithModels(o.DatabaseModels...)
	}
	if len(o.ExtraFxOptions) > 0 {
		builder.WithFxOptions(o.ExtraFxOptions...)
	}

	return builder.Build()
}

func WithConfig(cfg *config.Config) options.Option {
	return options.WithConfig(cfg)
}

func WithDatabaseModels(models ...any) options.Option {
	return options.WithDatabaseModels(models...)
}

func WithFxOptions(fxOpts ...fx.Option) options.Option {
	return options.WithFxOptions(fxOpts...)
}
