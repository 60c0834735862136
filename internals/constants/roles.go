package constants

import "fmt"

// Role pengguna aplikasi surat.
const (
	RoleAdmin  = "Admin"
	RoleGuru   = "Guru"
	RoleTendik = "Tendik"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrNeedLogin           = "❌ Silakan login terlebih dahulu untuk mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func LoginError(feature string) string {
	return fmt.Sprintf(ErrNeedLogin, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles  = []string{RoleAdmin, RoleGuru, RoleTendik}
	AdminOnly = []string{RoleAdmin}
)

// IsKnownRole: role valid untuk user.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
