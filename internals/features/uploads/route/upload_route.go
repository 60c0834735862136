package route

import (
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/uploads/controller"
	"suratku_backend/internals/features/uploads/service"
	"suratku_backend/internals/middlewares/auth"
)

// UploadRoutes: /api/upload
func UploadRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewUploadController(svc)
	api.Post("/upload", auth.RequireActor("upload"), ctrl.Upload)
}
