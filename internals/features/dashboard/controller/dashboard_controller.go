package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/features/dashboard/service"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	Svc *service.Service
}

func NewDashboardController(svc *service.Service) *DashboardController {
	return &DashboardController{Svc: svc}
}

// GET /api/dashboard
func (dc *DashboardController) Summary(c *fiber.Ctx) error {
	sum, err := dc.Svc.Summary(c.UserContext(), dbtime.Now(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Ringkasan dashboard", sum)
}

func parseBound(c *fiber.Ctx, key string) (time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(numbering.RawDateLayout, v, dbtime.GetLocation(c))
}

func (dc *DashboardController) filter(c *fiber.Ctx) (service.AgendaFilter, error) {
	tp, err := service.ParseAgendaType(c.Query("type"))
	if err != nil {
		return service.AgendaFilter{}, err
	}
	from, err := parseBound(c, "from")
	if err != nil {
		return service.AgendaFilter{}, fiber.NewError(fiber.StatusBadRequest, "Format from harus yyyy-mm-dd")
	}
	to, err := parseBound(c, "to")
	if err != nil {
		return service.AgendaFilter{}, fiber.NewError(fiber.StatusBadRequest, "Format to harus yyyy-mm-dd")
	}
	return service.AgendaFilter{Type: tp, From: from, To: to}, nil
}

// GET /api/agenda?type=masuk|keluar&from=&to=
func (dc *DashboardController) Agenda(c *fiber.Ctx) error {
	f, err := dc.filter(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	ag, err := dc.Svc.Agenda(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Buku agenda", ag)
}

// GET /api/agenda/export - CSV
func (dc *DashboardController) ExportCSV(c *fiber.Ctx) error {
	f, err := dc.filter(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	ag, err := dc.Svc.Agenda(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}

	name := "Agenda_Surat_" + string(ag.Type) + "_" + dbtime.Now(c).Format(numbering.RawDateLayout) + ".csv"
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return service.WriteCSV(c.Response().BodyWriter(), ag.Entries)
}
