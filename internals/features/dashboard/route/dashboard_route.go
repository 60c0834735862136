package route

import (
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/dashboard/controller"
	"suratku_backend/internals/features/dashboard/service"
)

// DashboardRoutes: /api/dashboard, /api/agenda
func DashboardRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewDashboardController(svc)

	api.Get("/dashboard", ctrl.Summary)
	api.Get("/agenda", ctrl.Agenda)
	api.Get("/agenda/export", ctrl.ExportCSV)
}
