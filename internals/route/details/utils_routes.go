package details

import (
	"github.com/gofiber/fiber/v2"

	dashboardRoute "suratku_backend/internals/features/dashboard/route"
	dashboardService "suratku_backend/internals/features/dashboard/service"
	settingsRoute "suratku_backend/internals/features/settings/route"
	settingsService "suratku_backend/internals/features/settings/service"
	uploadRoute "suratku_backend/internals/features/uploads/route"
	uploadService "suratku_backend/internals/features/uploads/service"
)

// UtilsRoutes: settings, dashboard + agenda, upload lampiran
func UtilsRoutes(api fiber.Router, set *settingsService.Service, dash *dashboardService.Service, up *uploadService.Service) {
	settingsRoute.SettingsRoutes(api, set)
	dashboardRoute.DashboardRoutes(api, dash)
	uploadRoute.UploadRoutes(api, up)
}
