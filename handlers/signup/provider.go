package signup

import (
	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/middleware/ratelimit"
	"github.com/mangomarket/onboard/server"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(cfg *config.Config, srv *server.Server, h *Handler, store ratelimit.Store) {
	group := srv.Group("/otp")

	if cfg.RateLimit.Enabled {
		group.Use(ratelimit.Middleware(&ratelimit.Config{
			Store:  store,
			Rate:   cfg.RateLimit.Rate,
			Period: cfg.RateLimit.Period,
		}))
	}

	group.POST("/issue", h.Issue)
	group.POST("/verify", h.Verify)
}
