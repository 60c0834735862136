package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classificationService "suratku_backend/internals/features/classifications/service"
	incomingService "suratku_backend/internals/features/correspondence/incoming/service"
	outgoingService "suratku_backend/internals/features/correspondence/outgoing/service"
	dashboardService "suratku_backend/internals/features/dashboard/service"
	settingsService "suratku_backend/internals/features/settings/service"
	uploadService "suratku_backend/internals/features/uploads/service"
	userService "suratku_backend/internals/features/users/service"
	routeDetails "suratku_backend/internals/route/details"
	"suratku_backend/internals/sheets"
)

var startTime time.Time

// Deps berisi service yang sudah dirakit main.
type Deps struct {
	Store           *sheets.Gateway
	DB              *gorm.DB // opsional
	Incoming        *incomingService.Service
	Outgoing        *outgoingService.Service
	Classifications *classificationService.Registry
	Settings        *settingsService.Service
	Users           *userService.Service
	Dashboard       *dashboardService.Service
	Uploads         *uploadService.Service
	JWTSecret       string
	TokenTTL        time.Duration
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d)

	api := app.Group("/api")

	log.Println("[INFO] Mounting Correspondence routes...")
	routeDetails.CorrespondenceRoutes(api, d.Incoming, d.Outgoing, d.Classifications)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, d.Users, d.JWTSecret, d.TokenTTL)

	log.Println("[INFO] Mounting Utils routes...")
	routeDetails.UtilsRoutes(api, d.Settings, d.Dashboard, d.Uploads)
}
