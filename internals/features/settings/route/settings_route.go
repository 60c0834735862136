package route

import (
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/settings/controller"
	"suratku_backend/internals/features/settings/service"
	"suratku_backend/internals/middlewares/auth"
)

// SettingsRoutes: /api/settings
func SettingsRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewSettingsController(svc)

	g := api.Group("/settings")
	g.Get("/", ctrl.Get)
	g.Post("/",
		auth.RequireActor("pengaturan"),
		auth.OnlyRoles(constants.RoleErrorAdmin("pengaturan"), constants.AdminOnly...),
		ctrl.Save,
	)
}
