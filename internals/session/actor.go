// Package session berisi Actor: identitas pemanggil yang diteruskan eksplisit ke setiap
// operasi yang butuh penginput. Tidak ada "user aktif" global.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// LocalsKey adalah key c.Locals tempat middleware menyimpan Actor.
const LocalsKey = "actor"

var ErrNoActor = errors.New("actor tidak ditemukan")

// Actor adalah pengguna yang sedang melakukan operasi.
type Actor struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Valid true kalau nama terisi (nama dipakai sebagai penginput).
func (a Actor) Valid() bool {
	return strings.TrimSpace(a.Name) != ""
}

// HasRole membandingkan role tanpa peduli huruf besar/kecil.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(a.Role, r) {
			return true
		}
	}
	return false
}

// System adalah actor untuk job internal (cron, CLI).
func System(name string) Actor {
	if name == "" {
		name = "system"
	}
	return Actor{Name: name, Role: "System"}
}

// FromCtx membaca Actor yang disimpan middleware.
func FromCtx(c *fiber.Ctx) (Actor, bool) {
	a, ok := c.Locals(LocalsKey).(Actor)
	if !ok || !a.Valid() {
		return Actor{}, false
	}
	return a, true
}

// Store menyimpan Actor ke Locals.
func Store(c *fiber.Ctx, a Actor) {
	c.Locals(LocalsKey, a)
}

// ParseToken memverifikasi JWT HS256 dan membangun Actor dari klaimnya.
// Klaim yang dibaca: id, name, user_name/username, role, exp.
func ParseToken(tokenString, secret string, skew time.Duration) (Actor, error) {
	if secret == "" {
		return Actor{}, errors.New("jwt secret kosong")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Actor{}, err
	}
	if err := validateExpiry(claims, skew); err != nil {
		return Actor{}, err
	}
	return FromClaims(claims)
}

// FromClaims memetakan klaim JWT ke Actor.
func FromClaims(claims jwt.MapClaims) (Actor, error) {
	a := Actor{
		ID:       claimString(claims, "id"),
		Name:     claimString(claims, "name"),
		Username: claimString(claims, "user_name", "username"),
		Role:     claimString(claims, "role"),
	}
	if a.Name == "" {
		a.Name = a.Username
	}
	if !a.Valid() {
		return Actor{}, ErrNoActor
	}
	return a, nil
}

// Token membuat JWT untuk actor (dipakai CLI dan test).
func Token(a Actor, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":        a.ID,
		"name":      a.Name,
		"user_name": a.Username,
		"role":      a.Role,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func validateExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return errors.New("token has no exp")
	}
	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	default:
		return errors.New("invalid exp type")
	}
	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}
