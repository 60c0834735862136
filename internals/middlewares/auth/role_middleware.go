package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/session"
)

// OnlyRoles menolak actor yang role-nya tidak ada di roles. Dipasang setelah RequireActor.
func OnlyRoles(forbiddenMessage string, roles ...string) fiber.Handler {
	if forbiddenMessage == "" {
		forbiddenMessage = "Akses ditolak untuk role " + strings.Join(roles, "/")
	}
	return func(c *fiber.Ctx) error {
		actor, ok := session.FromCtx(c)
		switch {
		case !ok:
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: actor tidak ditemukan")
		case actor.HasRole(roles...):
			return c.Next()
		}
		log.Printf("[WARN] role %q (%s) ditolak di %s %s\n", actor.Role, actor.Name, c.Method(), c.Path())
		return helper.JsonError(c, fiber.StatusForbidden, forbiddenMessage)
	}
}
