// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"suratku_backend/internals/constants"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/session"
)

// Header fallback untuk caller tanpa JWT (mis. UI lama yang menyimpan user di localStorage).
const (
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
	HeaderUserID   = "X-User-Id"
)

// ResolveActor membaca actor dari Bearer JWT kalau secret diset. Header X-User-* hanya
// dipakai kalau secret kosong, atau kalau allowHeaders diaktifkan (AUTH_HEADER_FALLBACK).
// Tidak pernah menolak request tanpa actor; penolakan dilakukan RequireActor / OnlyRoles.
func ResolveActor(secret string, allowHeaders bool) fiber.Handler {
	useHeaders := secret == "" || allowHeaders
	return func(c *fiber.Ctx) error {
		if secret != "" {
			if tok, ok := bearerToken(c); ok {
				actor, err := session.ParseToken(tok, secret, 30*time.Second)
				if err != nil {
					log.Println("[ERROR] Gagal parse token:", err)
					return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token tidak valid")
				}
				session.Store(c, actor)
				return c.Next()
			}
		}

		if !useHeaders {
			return c.Next()
		}
		if a, ok := actorFromHeaders(c); ok {
			session.Store(c, a)
		}
		return c.Next()
	}
}

// RequireActor menolak request tanpa actor (penginput wajib untuk operasi tulis).
func RequireActor(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := session.FromCtx(c); !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.LoginError(feature))
		}
		return c.Next()
	}
}

// bearerToken: header Authorization, fallback cookie access_token.
func bearerToken(c *fiber.Ctx) (string, bool) {
	if scheme, tok, ok := strings.Cut(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " "); ok {
		if !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		tok = strings.Trim(strings.TrimSpace(tok), "\"'")
		return tok, tok != ""
	}
	if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
		return tok, true
	}
	return "", false
}

func actorFromHeaders(c *fiber.Ctx) (session.Actor, bool) {
	a := session.Actor{
		ID:   strings.TrimSpace(c.Get(HeaderUserID)),
		Name: strings.TrimSpace(c.Get(HeaderUserName)),
		Role: strings.TrimSpace(c.Get(HeaderUserRole)),
	}
	return a, a.Valid()
}
