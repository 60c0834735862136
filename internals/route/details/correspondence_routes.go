package details

import (
	"github.com/gofiber/fiber/v2"

	classificationRoute "suratku_backend/internals/features/classifications/route"
	classificationService "suratku_backend/internals/features/classifications/service"
	incomingRoute "suratku_backend/internals/features/correspondence/incoming/route"
	incomingService "suratku_backend/internals/features/correspondence/incoming/service"
	outgoingRoute "suratku_backend/internals/features/correspondence/outgoing/route"
	outgoingService "suratku_backend/internals/features/correspondence/outgoing/service"
)

// CorrespondenceRoutes: surat masuk, surat keluar (penomoran), klasifikasi
func CorrespondenceRoutes(api fiber.Router, in *incomingService.Service, out *outgoingService.Service, reg *classificationService.Registry) {
	incomingRoute.IncomingRoutes(api, in)
	outgoingRoute.OutgoingRoutes(api, out)
	classificationRoute.ClassificationRoutes(api, reg)
}
