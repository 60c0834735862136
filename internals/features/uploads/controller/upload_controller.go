package controller

import (
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/uploads/service"
	helper "suratku_backend/internals/helpers"
)

type UploadController struct {
	Svc *service.Service
}

func NewUploadController(svc *service.Service) *UploadController {
	return &UploadController{Svc: svc}
}

// kandidat nama field file dari FE/Postman, urut preferensi
var fileFields = []string{"file", "files", "files[]", "attachment", "upload"}

func pickFile(form *multipart.Form) *multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	for _, key := range fileFields {
		for _, fh := range form.File[key] {
			if fh != nil && fh.Filename != "" {
				return fh
			}
		}
	}
	return nil
}

// POST /api/upload - multipart: file, folder, customFilename
func (uc *UploadController) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body harus multipart/form-data")
	}
	fh := pickFile(form)
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > uc.Svc.MaxBytes() {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Ukuran file terlalu besar")
	}

	f, err := fh.Open()
	if err != nil {
		log.Println("[ERROR] gagal membuka file upload:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, uc.Svc.MaxBytes()+1))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}

	res, err := uc.Svc.Upload(c.UserContext(), service.File{
		Name:           fh.Filename,
		MimeType:       fh.Header.Get(fiber.HeaderContentType),
		Data:           data,
		Folder:         c.FormValue("folder"),
		CustomFilename: c.FormValue("customFilename"),
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Upload berhasil", res)
}
