package account

import (
	"github.com/mangomarket/onboard/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideAccountService(db *gorm.DB, logger *logging.Service) *Service {
	return NewService(db, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideAccountService),
)
