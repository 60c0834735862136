package details

import (
	"time"

	"github.com/gofiber/fiber/v2"

	userRoute "suratku_backend/internals/features/users/route"
	userService "suratku_backend/internals/features/users/service"
	rateLimiter "suratku_backend/internals/middlewares"
)

// UserRoutes: manajemen user, profil, login (login dibatasi lebih ketat)
func UserRoutes(api fiber.Router, svc *userService.Service, jwtSecret string, ttl time.Duration) {
	api.Use("/auth/login", rateLimiter.LoginRateLimiter())
	userRoute.UserRoutes(api, svc, jwtSecret, ttl)
}
