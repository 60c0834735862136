package route

import (
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/classifications/controller"
	"suratku_backend/internals/features/classifications/service"
	"suratku_backend/internals/middlewares/auth"
)

// ClassificationRoutes: /api/classifications (tulis khusus admin)
func ClassificationRoutes(api fiber.Router, reg *service.Registry) {
	ctrl := controller.NewClassificationController(reg)
	admin := auth.OnlyRoles(constants.RoleErrorAdmin("klasifikasi"), constants.AdminOnly...)

	g := api.Group("/classifications")
	g.Get("/", ctrl.List)
	g.Post("/", auth.RequireActor("klasifikasi"), admin, ctrl.Save)
	g.Post("/item", auth.RequireActor("klasifikasi"), admin, ctrl.Add)
	g.Put("/item/:code", auth.RequireActor("klasifikasi"), admin, ctrl.Update)
	g.Delete("/item/:code", auth.RequireActor("klasifikasi"), admin, ctrl.Delete)
}
