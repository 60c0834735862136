package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"

	"suratku_backend/internals/configs"
	database "suratku_backend/internals/databases"
	classificationService "suratku_backend/internals/features/classifications/service"
	incomingService "suratku_backend/internals/features/correspondence/incoming/service"
	"suratku_backend/internals/features/correspondence/numbering"
	outgoingService "suratku_backend/internals/features/correspondence/outgoing/service"
	dashboardService "suratku_backend/internals/features/dashboard/service"
	settingsService "suratku_backend/internals/features/settings/service"
	uploadService "suratku_backend/internals/features/uploads/service"
	userService "suratku_backend/internals/features/users/service"
	helper "suratku_backend/internals/helpers"
	ossHelper "suratku_backend/internals/helpers/oss"
	"suratku_backend/internals/logger"
	middlewares "suratku_backend/internals/middlewares"
	routes "suratku_backend/internals/route"
	"suratku_backend/internals/sheets"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("❌ Config tidak valid: %v", err)
	}

	if err := logger.Init(&logger.LogConfig{
		Level:      cfg.LogLevel,
		LogPath:    cfg.LogPath,
		MaxSizeMB:  50,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}); err != nil {
		log.Fatalf("❌ Logger: %v", err)
	}
	appLog := logger.GetLogger(logger.App)
	loc := cfg.Location()

	// 🔌 store adapter (spreadsheet)
	client, err := sheets.New(cfg.ScriptURL, cfg.StoreTimeout, logger.GetLogger(logger.Audit))
	if err != nil {
		log.Fatalf("❌ Store adapter: %v", err)
	}
	store := sheets.NewGateway(client)

	// 🔒 locker + jurnal (opsional, Postgres)
	var (
		db      *gorm.DB
		locker  numbering.Locker  = numbering.NoLock{}
		journal numbering.Journal = numbering.NopJournal{}
	)
	if cfg.DB.Enabled() {
		if db, err = database.Connect(cfg.DB); err != nil {
			log.Fatalf("❌ Gagal konek DB: %v", err)
		}
		journal = numbering.NewGormJournal(db)
		if cfg.NumberingLock == "postgres" {
			locker = numbering.NewAdvisoryLocker(db)
			log.Println("[INFO] Penomoran memakai pg_advisory_lock")
		}
	}

	// 📎 lampiran: Apps Script (default) atau Aliyun OSS
	var uploader uploadService.Uploader = store
	if cfg.UploadBackend == "oss" {
		ossUploader, err := ossHelper.New(cfg.OSS, appLog)
		if err != nil {
			log.Fatalf("❌ OSS: %v", err)
		}
		uploader = ossUploader
		log.Println("[INFO] Upload lampiran memakai Aliyun OSS")
	}

	settings := settingsService.New(store, appLog)
	deps := routes.Deps{
		Store:           store,
		DB:              db,
		Incoming:        incomingService.New(store),
		Classifications: classificationService.New(store),
		Settings:        settings,
		Users:           userService.New(store, appLog),
		Dashboard:       dashboardService.New(store, loc),
		Uploads:         uploadService.New(uploader, cfg.UploadMaxMB, appLog),
		JWTSecret:       cfg.JWTSecret,
		TokenTTL:        cfg.TokenTTL,
		Outgoing: outgoingService.New(store, outgoingService.Options{
			Locker:         locker,
			Journal:        journal,
			Location:       loc,
			DefaultOrgCode: cfg.DefaultOrgCode,
			Log:            appLog,
		}),
	}

	// ⏱ reset nomor urut per periode
	resetCron, err := settings.StartResetCron(cfg.ResetCron, loc)
	if err != nil {
		log.Fatalf("❌ RESET_CRON tidak valid: %v", err)
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             (cfg.UploadMaxMB + 2) << 20, // base64 lampiran + field form
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg, appLog)

	routes.SetupRoutes(app, deps)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 2 * time.Minute // fan-out Induk + Sub bisa puluhan panggilan store
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + stop cron + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-resetCron.Stop().Done()
	database.Close(db)
}
