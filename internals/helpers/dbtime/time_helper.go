// Package dbtime menyediakan zona waktu aplikasi untuk handler (tanggal surat,
// hitungan "bulan ini" di dashboard).
package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LocAppLoc adalah key Locals untuk *time.Location yang diisi middleware.
const LocAppLoc = "app_loc"

const fallbackTimezone = "Asia/Jakarta"

// LoadLocation memuat zona dari nama; gagal → Asia/Jakarta → UTC.
func LoadLocation(name string) *time.Location {
	for _, n := range []string{strings.TrimSpace(name), fallbackTimezone} {
		if n == "" {
			continue
		}
		if loc, err := time.LoadLocation(n); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Middleware menyimpan loc ke Locals untuk setiap request.
func Middleware(loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocAppLoc, loc)
		return c.Next()
	}
}

// GetLocation membaca zona dari Locals; tanpa middleware → Asia/Jakarta.
func GetLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return LoadLocation("")
}

// Now: waktu sekarang di zona aplikasi.
func Now(c *fiber.Ctx) time.Time {
	return time.Now().In(GetLocation(c))
}

// ParseDate membaca "yyyy-mm-dd" di zona aplikasi; kosong → hari ini.
func ParseDate(c *fiber.Ctx, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		n := Now(c)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location()), nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return time.ParseInLocation("2006-01-02", s, GetLocation(c))
}
