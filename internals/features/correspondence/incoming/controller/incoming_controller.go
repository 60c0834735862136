package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/correspondence/incoming/dto"
	"suratku_backend/internals/features/correspondence/incoming/service"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/helpers/dbtime"
	"suratku_backend/internals/session"
)

type IncomingController struct {
	Svc *service.Service
}

func NewIncomingController(svc *service.Service) *IncomingController {
	return &IncomingController{Svc: svc}
}

// GET /api/surat-masuk
func (ic *IncomingController) List(c *fiber.Ctx) error {
	rows, err := ic.Svc.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	page, pg := helper.PageSlice(rows, helper.ResolvePaging(c, 20, 200))
	return helper.JsonList(c, "Daftar surat masuk", page, pg)
}

// POST /api/surat-masuk
func (ic *IncomingController) Create(c *fiber.Ctx) error {
	actor, _ := session.FromCtx(c)

	var req dto.CreateIncomingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Println("[ERROR] Invalid input format:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	tgl, err := dbtime.ParseDate(c, req.TanggalMasuk)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus yyyy-mm-dd")
	}

	rec, err := ic.Svc.Create(c.UserContext(), actor, service.Letter{
		Nomor:        req.Nomor,
		Kode:         req.Kode,
		TanggalMasuk: tgl,
		Pengirim:     req.Pengirim,
		Perihal:      req.Perihal,
		FileURL:      req.FileURL,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	log.Printf("[SUCCESS] Surat masuk %s dicatat oleh %s\n", req.Nomor, actor.Name)
	return helper.JsonCreated(c, "Surat masuk disimpan", rec)
}

// PUT /api/surat-masuk - body {id, ...kolom}
func (ic *IncomingController) Update(c *fiber.Ctx) error {
	var req dto.UpdateIncomingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	rec, err := ic.Svc.Update(c.UserContext(), req.ID, req.ToRecord())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Surat masuk diperbarui", rec)
}

// DELETE /api/surat-masuk - body {id} atau ?id=
func (ic *IncomingController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" && len(c.Body()) > 0 {
		var req dto.DeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		id = strings.TrimSpace(req.ID)
	}
	if err := ic.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Surat masuk dihapus", fiber.Map{"id": id})
}
