package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/features/users/dto"
	"suratku_backend/internals/features/users/service"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/session"
)

type UserController struct {
	Svc       *service.Service
	JWTSecret string
	TokenTTL  time.Duration
}

func NewUserController(svc *service.Service, secret string, ttl time.Duration) *UserController {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &UserController{Svc: svc, JWTSecret: secret, TokenTTL: ttl}
}

// GET /api/users
func (uc *UserController) List(c *fiber.Ctx) error {
	rows, err := uc.Svc.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	page, pg := helper.PageSlice(rows, helper.ResolvePaging(c, 20, 200))
	return helper.JsonList(c, "Daftar pengguna", page, pg)
}

// POST /api/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Println("[ERROR] Invalid input format:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	rec, err := uc.Svc.Create(c.UserContext(), req.ToRecord())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Pengguna ditambahkan", rec)
}

// PUT /api/users - body {id, ...kolom}
func (uc *UserController) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	rec, err := uc.Svc.Update(c.UserContext(), req.ID, req.ToRecord())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Pengguna diperbarui", rec)
}

// DELETE /api/users?id=
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID is required")
	}
	if actor, ok := session.FromCtx(c); ok && actor.ID == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa menghapus akun sendiri")
	}
	if err := uc.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Pengguna dihapus", fiber.Map{"id": id})
}

// POST /api/user/profile
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	actor, _ := session.FromCtx(c)

	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}
	rec, err := uc.Svc.UpdateProfile(c.UserContext(), actor, req.ToRecord())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Profil diperbarui", rec)
}

// POST /api/auth/login
func (uc *UserController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.FromError(c, err)
	}

	actor, err := uc.Svc.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrInvalidLogin.Message)
		}
		return helper.FromError(c, err)
	}

	resp := dto.LoginResponse{User: actor}
	if uc.JWTSecret != "" {
		tok, err := session.Token(actor, uc.JWTSecret, uc.TokenTTL)
		if err != nil {
			log.Println("[ERROR] gagal membuat token:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
		}
		resp.Token = tok
		resp.ExpiresIn = int64(uc.TokenTTL.Seconds())
	}
	log.Printf("[INFO] Login sukses: %s (%s)\n", actor.Username, actor.Role)
	return helper.JsonOK(c, "Login berhasil", resp)
}
