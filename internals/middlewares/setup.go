package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"suratku_backend/internals/configs"
	"suratku_backend/internals/helpers/dbtime"
	"suratku_backend/internals/middlewares/auth"
	"suratku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan: request id → recover →
// cors → access log → rate limit → zona waktu → actor.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, log *logrus.Logger) {
	app.Use(RequestID(log))
	app.Use(RecoveryMiddleware(log))
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(logger.LoggerMiddleware(cfg.Timezone))
	app.Use(GlobalRateLimiter(cfg.RateLimitMax))
	app.Use(dbtime.Middleware(cfg.Location()))
	app.Use(auth.ResolveActor(cfg.JWTSecret, cfg.AuthHeaderFallback))
}
