package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "suratku_backend/internals/helpers"
)

// endpoint ops tidak ikut dibatasi
var unlimitedPaths = map[string]bool{"/health": true, "/metrics": true}

func ipLimiter(scope string, max int, window time.Duration, message string, skip func(*fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: func(c *fiber.Ctx) string { return scope + ":" + c.IP() },
		Next:         skip,
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, "60")
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter: RATE_LIMIT_MAX request per menit per IP.
func GlobalRateLimiter(max int) fiber.Handler {
	if max <= 0 {
		max = 100
	}
	return ipLimiter("global", max, time.Minute, "Terlalu banyak permintaan. Silakan coba lagi nanti.",
		func(c *fiber.Ctx) bool { return unlimitedPaths[strings.TrimRight(c.Path(), "/")] })
}

// LoginRateLimiter: 5 percobaan login per menit per IP.
func LoginRateLimiter() fiber.Handler {
	return ipLimiter("login", 5, time.Minute, "Terlalu banyak percobaan login. Coba beberapa saat lagi.", nil)
}
