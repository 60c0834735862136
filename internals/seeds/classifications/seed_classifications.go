package classifications

import (
	"context"
	_ "embed"
	"log"
	"os"

	"suratku_backend/internals/features/classifications/service"
)

// DefaultReplace menghapus kode lama bidang pendidikan 400.3.2 s/d 400.3.13 sebelum impor.
const DefaultReplace = `^400\.3\.(2|3|4|5|6|7|8|9|10|11|12|13)(\.|$)`

//go:embed data_classifications.txt
var defaultData string

// SeedClassificationsFromFile menggabungkan kode "<kode> <label>" per baris ke registry.
// filePath kosong → pakai data bawaan.
func SeedClassificationsFromFile(ctx context.Context, reg *service.Registry, filePath, replace string) (*service.ImportResult, error) {
	data := defaultData
	if filePath != "" {
		log.Println("📥 Membaca file klasifikasi:", filePath)
		b, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		data = string(b)
	}

	items := service.ParseLines(data)
	log.Printf("[INFO] %d kode klasifikasi terbaca", len(items))

	res, err := reg.Import(ctx, items, replace)
	if err != nil {
		log.Printf("❌ Gagal seed klasifikasi: %v", err)
		return nil, err
	}
	log.Printf("✅ Klasifikasi: kept=%d removed=%d imported=%d total=%d", res.Kept, res.Removed, res.Imported, res.Total)
	return res, nil
}
