package otp

import (
	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/services/account"
	"github.com/mangomarket/onboard/services/logging"
	"github.com/mangomarket/onboard/services/mail"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideStore(cfg *config.Config) Store {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(client, cfg.OTP.MaxAttempts)
	}
	return NewMemoryStore(cfg.OTP.MaxAttempts)
}

func ProvideOTPService(cfg *config.Config, store Store, mailSvc *mail.Service, accounts *account.Service, logger *logging.Service) *Service {
	return NewService(cfg, store, mailSvc, accounts, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideStore),
	fx.Provide(ProvideOTPService),
)
