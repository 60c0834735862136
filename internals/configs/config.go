package configs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config berisi semua pengaturan runtime yang dibaca dari ENV.
type Config struct {
	Port           string        `env:"PORT" envDefault:"3000"`
	ScriptURL      string        `env:"GOOGLE_SCRIPT_URL,required,notEmpty"`
	StoreTimeout   time.Duration `env:"STORE_TIMEOUT" envDefault:"20s"`
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"JWT_TTL" envDefault:"12h"`
	CorsOrigins    string        `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	RateLimitMax   int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPath        string        `env:"LOG_PATH" envDefault:"./logs"`
	UploadMaxMB    int           `env:"UPLOAD_MAX_MB" envDefault:"10"`
	Timezone       string        `env:"TIMEZONE" envDefault:"Asia/Jakarta"`
	ResetCron      string        `env:"RESET_CRON" envDefault:"5 0 1 * *"`
	NumberingLock  string        `env:"NUMBERING_LOCK" envDefault:"none"`
	DefaultOrgCode string        `env:"DEFAULT_KODE_INSTANSI"`
	UploadBackend  string        `env:"UPLOAD_BACKEND" envDefault:"script"`
	// header X-User-* tetap dibaca walau JWT_SECRET diset (masa transisi UI lama)
	AuthHeaderFallback bool `env:"AUTH_HEADER_FALLBACK" envDefault:"false"`

	DB  DBConfig
	OSS OSSConfig
}

// OSSConfig hanya dipakai kalau UPLOAD_BACKEND=oss.
type OSSConfig struct {
	Endpoint      string  `env:"ALI_OSS_ENDPOINT"`
	AccessKey     string  `env:"ALI_OSS_ACCESS_KEY"`
	SecretKey     string  `env:"ALI_OSS_SECRET_KEY"`
	SecurityToken string  `env:"ALI_OSS_SECURITY_TOKEN"`
	Bucket        string  `env:"ALI_OSS_BUCKET"`
	Prefix        string  `env:"ALI_OSS_PREFIX" envDefault:"surat"`
	PublicBase    string  `env:"ALI_OSS_PUBLIC_BASE"`
	WebP          bool    `env:"IMAGE_WEBP" envDefault:"true"`
	WebPMaxW      int     `env:"IMAGE_WEBP_MAX_W" envDefault:"1600"`
	WebPMaxH      int     `env:"IMAGE_WEBP_MAX_H" envDefault:"1600"`
	WebPQuality   float32 `env:"IMAGE_WEBP_QUALITY" envDefault:"80"`
}

// Enabled true kalau kredensial minimum lengkap.
func (o OSSConfig) Enabled() bool {
	return o.Endpoint != "" && o.AccessKey != "" && o.SecretKey != "" && o.Bucket != ""
}

// DBConfig hanya dipakai kalau NUMBERING_LOCK=postgres.
type DBConfig struct {
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"require"`
}

// DSN membentuk URL koneksi postgres.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=suratku&options=-c statement_timeout=3000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Enabled true kalau host DB diisi.
func (d DBConfig) Enabled() bool {
	return d.Host != ""
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load memuat .env lalu mem-parse Config.
func Load() (*Config, error) {
	LoadEnv()
	return Parse()
}

// Parse membaca Config dari ENV proses saat ini tanpa menyentuh .env.
func Parse() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.StoreTimeout <= 0 {
		return nil, fmt.Errorf("STORE_TIMEOUT harus > 0")
	}
	switch cfg.NumberingLock {
	case "none", "postgres":
	default:
		return nil, fmt.Errorf("NUMBERING_LOCK tidak dikenal: %q", cfg.NumberingLock)
	}
	if cfg.NumberingLock == "postgres" && !cfg.DB.Enabled() {
		return nil, fmt.Errorf("NUMBERING_LOCK=postgres butuh DB_HOST")
	}
	switch cfg.UploadBackend {
	case "script":
	case "oss":
		if !cfg.OSS.Enabled() {
			return nil, fmt.Errorf("UPLOAD_BACKEND=oss butuh ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
		}
	default:
		return nil, fmt.Errorf("UPLOAD_BACKEND tidak dikenal: %q", cfg.UploadBackend)
	}
	return &cfg, nil
}

// Location mengembalikan zona waktu aplikasi; fallback ke UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("⚠️ TIMEZONE %q tidak valid, pakai UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
