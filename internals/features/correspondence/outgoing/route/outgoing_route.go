package route

import (
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/correspondence/outgoing/controller"
	"suratku_backend/internals/features/correspondence/outgoing/service"
	"suratku_backend/internals/middlewares/auth"
)

// OutgoingRoutes: /api/surat-keluar
func OutgoingRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewOutgoingController(svc)
	write := auth.RequireActor("surat keluar")

	g := api.Group("/surat-keluar")
	g.Get("/", ctrl.List)
	g.Get("/next-number", ctrl.NextNumber)
	g.Get("/verify", ctrl.Verify)
	g.Post("/", write, ctrl.Issue)
	g.Post("/redrive", write, ctrl.Redrive)
	g.Put("/", write, ctrl.Update)
	g.Delete("/", write, ctrl.Delete)
}
