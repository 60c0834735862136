package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/settings/dto"
	"suratku_backend/internals/features/settings/service"
	helper "suratku_backend/internals/helpers"
)

type SettingsController struct {
	Svc *service.Service
}

func NewSettingsController(svc *service.Service) *SettingsController {
	return &SettingsController{Svc: svc}
}

// GET /api/settings
func (sc *SettingsController) Get(c *fiber.Ctx) error {
	rec, err := sc.Svc.Get(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Pengaturan", rec)
}

// POST /api/settings
func (sc *SettingsController) Save(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		log.Println("[ERROR] Invalid settings payload:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req := dto.FromBody(body)
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}

	res, err := sc.Svc.Save(c.UserContext(), dto.ToRecord(body))
	if err != nil {
		return helper.FromError(c, err)
	}
	log.Printf("[INFO] Settings disimpan (admin synced=%v)\n", res.AdminSynced)
	return helper.JsonOK(c, "Settings saved successfully", res)
}
