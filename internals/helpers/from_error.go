package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/apperror"
)

// FromError memetakan error dari service ke response JSON konsisten.
//   - ValidationError → 400, validator.ValidationErrors → 422
//   - NotFoundError → 404
//   - RemoteError → 502, TransportError → 502 (504 kalau timeout)
//   - PartialWriteError → 207 dengan hasil per tulisan
//   - *fiber.Error → kode aslinya
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var (
		ve  *apperror.ValidationError
		nf  *apperror.NotFoundError
		pw  *apperror.PartialWriteError
		re  *apperror.RemoteError
		te  *apperror.TransportError
		fe  *fiber.Error
		vve validator.ValidationErrors
	)

	switch {
	case errors.As(err, &pw):
		return JsonMultiStatus(c, pw.Error(), fiber.Map{"results": pw.Results})
	case errors.As(err, &vve):
		return JsonValidationError(c, fiber.StatusUnprocessableEntity, FieldErrors(vve))
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "_"
		}
		return JsonValidationError(c, fiber.StatusBadRequest, map[string][]string{field: {ve.Message}})
	case errors.As(err, &nf):
		return JsonError(c, fiber.StatusNotFound, nf.Error())
	case errors.As(err, &re):
		log.Println("[ERROR] store menolak:", re)
		return JsonError(c, fiber.StatusBadGateway, re.Message)
	case errors.As(err, &te):
		log.Println("[ERROR] store tidak terjangkau:", te)
		if te.Timeout() {
			return JsonError(c, fiber.StatusGatewayTimeout, "Penyimpanan tidak merespons, coba lagi")
		}
		return JsonError(c, fiber.StatusBadGateway, "Gagal menghubungi penyimpanan")
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Println("[ERROR] unhandled:", err)
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ErrorHandler dipasang di fiber.Config supaya error yang lolos dari handler tetap berbentuk JSON standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}

// FieldErrors meratakan validator.ValidationErrors menjadi field → pesan.
func FieldErrors(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		key := strings.ToLower(fe.Field())
		msg := fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		out[key] = append(out[key], msg)
	}
	return out
}
