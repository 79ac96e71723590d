package app

import (
	"fmt"

	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/database"
	"github.com/mangomarket/onboard/handlers/signup"
	"github.com/mangomarket/onboard/middleware/ratelimit"
	"github.com/mangomarket/onboard/openapi"
	"github.com/mangomarket/onboard/server"
	"github.com/mangomarket/onboard/services/account"
	"github.com/mangomarket/onboard/services/logging"
	"github.com/mangomarket/onboard/services/mail"
	"github.com/mangomarket/onboard/services/otp"
	"go.uber.org/fx"
)

type AppBuilder struct {
	config    *config.Config
	models    []any
	fxOptions []fx.Option
	errors    []error
}

func NewApp() *AppBuilder {
	return &AppBuilder{
		models:    []any{&account.User{}},
		fxOptions: make([]fx.Option, 0),
		errors:    make([]error, 0),
	}
}

func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	if cfg == nil {
		b.addError("config cannot be nil")
		return b
	}
	b.config = cfg
	return b
}

func (b *AppBuilder) WithAutoConfig() *AppBuilder {
	cfg := &config.Config{}
	if err := config.LoadConfig(cfg); err != nil {
		b.addError(fmt.Sprintf("failed to load config: %v", err))
		return b
	}
	b.config = cfg
	return b
}

func (b *AppBuilder) WithModels(models ...any) *AppBuilder {
	b.models = append(b.models, models...)
	return b
}

func (b *AppBuilder) WithFxOptions(opts ...fx.Option) *AppBuilder {
	b.fxOptions = append(b.fxOptions, opts...)
	return b
}

func (b *AppBuilder) Build() (*App, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("configuration errors: %v", b.errors)
	}

	if b.config == nil {
		b.WithAutoConfig()
		if len(b.errors) > 0 {
			return nil, fmt.Errorf("configuration errors: %v", b.errors)
		}
	}

	logger, err := logging.NewService(logging.Config{
		Level:      logging.LogLevel(b.config.Log.Level),
		Format:     b.config.Log.Format,
		OutputPath: b.config.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.ProvideDatabase(*b.config, database.WithModels(b.models...), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		config: b.config,
		logger: logger,
		db:     db,
	}

	options := []fx.Option{
		fx.Supply(b.config),
		fx.Supply(logger),
		fx.Supply(db),
		fx.NopLogger,
		server.NewProvider(),
		fx.Provide(ratelimit.ProvideRateLimitStore),
		account.Module,
		mail.Module,
		otp.Module,
		signup.Module,
		fx.Invoke(func(srv *server.Server, cfg *config.Config) {
			openapi.Register(srv.Echo(), openapi.Document(cfg.App.Name+" Signup API", "1.0.0"))
		}),
		fx.Invoke(func(srv *server.Server) {
			app.server = srv
		}),
	}

	options = append(options, b.fxOptions...)

	app.fx = fx.New(options...)
	return app, nil
}

func (b *AppBuilder) addError(msg string) {
	b.errors = append(b.errors, fmt.Errorf("%s", msg))
}
