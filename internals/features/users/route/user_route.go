package route

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/users/controller"
	"suratku_backend/internals/features/users/service"
	"suratku_backend/internals/middlewares/auth"
)

// UserRoutes: /api/users (admin), /api/user/profile (diri sendiri), /api/auth/login
func UserRoutes(api fiber.Router, svc *service.Service, jwtSecret string, tokenTTL time.Duration) {
	ctrl := controller.NewUserController(svc, jwtSecret, tokenTTL)
	admin := []fiber.Handler{
		auth.RequireActor("pengguna"),
		auth.OnlyRoles(constants.RoleErrorAdmin("pengguna"), constants.AdminOnly...),
	}

	users := api.Group("/users", admin...)
	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Put("/", ctrl.Update)
	users.Delete("/", ctrl.Delete)

	api.Post("/user/profile", auth.RequireActor("profil"), ctrl.UpdateProfile)
	api.Post("/auth/login", ctrl.Login)
}
