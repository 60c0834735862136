package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/features/correspondence/outgoing/dto"
	"suratku_backend/internals/features/correspondence/outgoing/service"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/helpers/dbtime"
	"suratku_backend/internals/session"
)

type OutgoingController struct {
	Svc *service.Service
}

func NewOutgoingController(svc *service.Service) *OutgoingController {
	return &OutgoingController{Svc: svc}
}

// GET /api/surat-keluar
func (oc *OutgoingController) List(c *fiber.Ctx) error {
	rows, err := oc.Svc.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	page, pg := helper.PageSlice(rows, helper.ResolvePaging(c, 20, 200))
	return helper.JsonList(c, "Daftar surat keluar", page, pg)
}

// GET /api/surat-keluar/next-number?tanggal=2024-03-15&kode=400.1&sub=2
func (oc *OutgoingController) NextNumber(c *fiber.Ctx) error {
	tanggal, err := dbtime.ParseDate(c, c.Query("tanggal"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus yyyy-mm-dd")
	}
	sub := 0
	if s := strings.TrimSpace(c.Query("sub")); s != "" {
		if sub, err = strconv.Atoi(s); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "sub harus angka")
		}
	}
	p, err := oc.Svc.NextNumber(c.UserContext(), service.PreviewRequest{
		Tanggal: tanggal,
		Kode:    c.Query("kode"),
		Sub:     sub,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Nomor berikutnya", p)
}

// GET /api/surat-keluar/verify?nomor=B-005/...
func (oc *OutgoingController) Verify(c *fiber.Ctx) error {
	rec, err := oc.Svc.Verify(c.UserContext(), c.Query("nomor"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Surat ditemukan", rec)
}

// POST /api/surat-keluar - terbitkan Induk (+ Sub)
func (oc *OutgoingController) Issue(c *fiber.Ctx) error {
	actor, _ := session.FromCtx(c)

	var req dto.IssueOutgoingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Println("[ERROR] Invalid input format:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	tanggal, err := dbtime.ParseDate(c, req.Tanggal)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus yyyy-mm-dd")
	}

	res, err := oc.Svc.Issue(c.UserContext(), actor, service.IssueRequest{
		Tanggal:     tanggal,
		Kode:        req.Kode,
		Perihal:     req.Perihal,
		Tujuan:      req.Tujuan,
		SubPerihals: req.SubPerihals,
		FileURL:     req.FileURL,
		Sequence:    req.NomorUrut,
	})
	if err != nil {
		var pw *apperror.PartialWriteError
		if errors.As(err, &pw) && res != nil {
			return helper.JsonMultiStatus(c, "Sebagian surat gagal disimpan, gunakan redrive", res)
		}
		return helper.FromError(c, err)
	}

	msg := "Surat berhasil disimpan"
	if n := len(res.Letters); n > 1 {
		msg = "Berhasil menyimpan " + strconv.Itoa(n) + " surat (1 Induk + " + strconv.Itoa(n-1) + " Sub)"
	}
	return helper.JsonCreated(c, msg, res)
}

// POST /api/surat-keluar/redrive
func (oc *OutgoingController) Redrive(c *fiber.Ctx) error {
	actor, _ := session.FromCtx(c)

	var req dto.RedriveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}

	res, err := oc.Svc.Redrive(c.UserContext(), actor, service.RedriveRequest{
		IssuanceID: req.IssuanceID,
		Letters:    req.Records(),
	})
	if err != nil {
		var pw *apperror.PartialWriteError
		if errors.As(err, &pw) && res != nil {
			return helper.JsonMultiStatus(c, "Masih ada surat yang gagal disimpan", res)
		}
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Redrive selesai", res)
}

// PUT /api/surat-keluar - body {id, ...kolom}
func (oc *OutgoingController) Update(c *fiber.Ctx) error {
	var req dto.UpdateOutgoingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	rec, err := oc.Svc.Update(c.UserContext(), req.ID, req.ToRecord())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Surat keluar diperbarui", rec)
}

// DELETE /api/surat-keluar - body {id} atau ?id=
func (oc *OutgoingController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		var req dto.DeleteRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
			}
		}
		id = strings.TrimSpace(req.ID)
	}
	if err := oc.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Surat keluar dihapus", fiber.Map{"id": id})
}
