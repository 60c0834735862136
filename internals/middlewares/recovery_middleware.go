package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware menangkap panic; stack trace dicatat ke logger app, response 500 JSON
func RecoveryMiddleware(log *logrus.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
				"reqid":  c.Locals(RequestIDKey),
			}).Errorf("[PANIC] %v", e)
		},
	})
}
