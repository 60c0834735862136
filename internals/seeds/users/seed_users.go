package users

import (
	"context"
	_ "embed"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"suratku_backend/internals/features/users/service"
	"suratku_backend/internals/sheets"
)

type UserSeed struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Jabatan  string `json:"jabatan"`
	NIP      string `json:"nip"`
}

//go:embed data_users.json
var defaultData []byte

// SeedUsersFromJSON membuat user yang belum ada (berdasarkan username).
// filePath kosong → pakai data bawaan. Mengembalikan jumlah user yang dibuat.
func SeedUsersFromJSON(ctx context.Context, svc *service.Service, filePath string) (int, error) {
	file := defaultData
	if filePath != "" {
		log.Println("📥 Membaca file user:", filePath)
		b, err := os.ReadFile(filePath)
		if err != nil {
			return 0, err
		}
		file = b
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return 0, err
	}

	existing, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, r := range existing {
		taken[strings.ToLower(r.String("username"))] = true
	}

	created := 0
	for _, data := range inputs {
		if taken[strings.ToLower(strings.TrimSpace(data.Username))] {
			log.Printf("ℹ️ User '%s' sudah ada, dilewati.", data.Username)
			continue
		}
		_, err := svc.Create(ctx, sheets.Record{
			"name":     strings.TrimSpace(data.Name),
			"username": strings.TrimSpace(data.Username),
			"password": data.Password,
			"role":     data.Role,
			"jabatan":  data.Jabatan,
			"nip":      data.NIP,
		})
		if err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", data.Username, err)
			return created, err
		}
		log.Printf("✅ Berhasil insert user '%s'", data.Username)
		taken[strings.ToLower(strings.TrimSpace(data.Username))] = true
		created++
	}
	return created, nil
}
