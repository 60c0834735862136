package route

import (
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/correspondence/incoming/controller"
	"suratku_backend/internals/features/correspondence/incoming/service"
	"suratku_backend/internals/middlewares/auth"
)

// IncomingRoutes: /api/surat-masuk
func IncomingRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewIncomingController(svc)
	write := auth.RequireActor("surat masuk")

	g := api.Group("/surat-masuk")
	g.Get("/", ctrl.List)
	g.Post("/", write, ctrl.Create)
	g.Put("/", write, ctrl.Update)
	g.Delete("/", write, ctrl.Delete)
}
