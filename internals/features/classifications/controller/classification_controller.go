package controller

import (
	"log"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/classifications/dto"
	"suratku_backend/internals/features/classifications/service"
	helper "suratku_backend/internals/helpers"
)

type ClassificationController struct {
	Reg *service.Registry
}

func NewClassificationController(reg *service.Registry) *ClassificationController {
	return &ClassificationController{Reg: reg}
}

// GET /api/classifications
func (cc *ClassificationController) List(c *fiber.Ctx) error {
	items, err := cc.Reg.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Daftar klasifikasi", items)
}

// POST /api/classifications - body: array penuh, menggantikan daftar lama
func (cc *ClassificationController) Save(c *fiber.Ctx) error {
	var req []dto.ClassificationItem
	if err := c.BodyParser(&req); err != nil {
		log.Println("[ERROR] Invalid classification payload:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Body harus berupa array klasifikasi")
	}
	for i := range req {
		req[i].Normalize()
		if err := helper.ValidateStruct(&req[i]); err != nil {
			return helper.FromError(c, err)
		}
	}

	saved, err := cc.Reg.Save(c.UserContext(), dto.ToItems(req))
	if err != nil {
		return helper.FromError(c, err)
	}
	log.Printf("[INFO] Klasifikasi disimpan: %d kode\n", len(saved))
	return helper.JsonOK(c, "Berhasil menyimpan "+strconv.Itoa(len(saved))+" klasifikasi", saved)
}

// POST /api/classifications/item
func (cc *ClassificationController) Add(c *fiber.Ctx) error {
	var req dto.ClassificationItem
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	it, err := cc.Reg.Add(c.UserContext(), req.ToItem())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Klasifikasi ditambahkan", it)
}

// PUT /api/classifications/item/:code
func (cc *ClassificationController) Update(c *fiber.Ctx) error {
	code, err := url.PathUnescape(c.Params("code"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kode tidak valid")
	}
	var req dto.UpdateClassificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	it, err := cc.Reg.Update(c.UserContext(), code, req.ToItem())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Klasifikasi diperbarui", it)
}

// DELETE /api/classifications/item/:code
func (cc *ClassificationController) Delete(c *fiber.Ctx) error {
	code, err := url.PathUnescape(c.Params("code"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kode tidak valid")
	}
	if err := cc.Reg.Delete(c.UserContext(), code); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Klasifikasi dihapus", fiber.Map{"code": code})
}
