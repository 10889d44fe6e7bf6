package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/rs/zerolog"

	"attendance_backend/internals/configs"
	database "attendance_backend/internals/databases"
	attRepo "attendance_backend/internals/features/attendance/attendances/repository"
	retRepo "attendance_backend/internals/features/attendance/retention/repository"
	retScheduler "attendance_backend/internals/features/attendance/retention/scheduler"
	retService "attendance_backend/internals/features/attendance/retention/service"
	"attendance_backend/internals/helpers/blob"
	"attendance_backend/internals/helpers/dbtime"
	"attendance_backend/internals/helpers/logger"
	routes "attendance_backend/internals/route"
	"attendance_backend/internals/seeds"
)

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("❌ config tidak valid")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, JSONOutput: cfg.LogJSON})
	log := logger.WithComponent("main")

	// satu titik exit: semua defer di run() sudah jalan sebelum os.Exit
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("❌ server berhenti dengan error")
		os.Exit(1)
	}
}

func run(cfg *configs.Config, log zerolog.Logger) error {
	// 🔌 DB connect + pool + migrate + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return err
	}
	// graceful shutdown → tutup pool DB
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	database.WarmUpQueries(db)

	// 🌱 seed user awal (opsional)
	if err := seeds.RunAllSeeds(context.Background(), db, cfg.SeedUsersFile); err != nil {
		log.Error().Err(err).Msg("❌ seed gagal")
	}

	// 🕰️ zona sipil
	cal := dbtime.NewCalendar(dbtime.LoadLocation(cfg.Timezone, dbtime.DefaultOffsetSeconds), dbtime.SystemClock{})
	log.Info().Str("timezone", cal.Location().String()).Msg("calendar ready")

	// 📷 blob store
	var store blob.Store
	switch cfg.BlobBackend {
	case "supabase":
		store = blob.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	default:
		local, err := blob.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL, cfg.PhotoMaxPixels, cfg.PhotoWebPQuality)
		if err != nil {
			return fmt.Errorf("upload dir: %w", err)
		}
		store = local
	}
	log.Info().Str("backend", cfg.BlobBackend).Msg("blob store ready")

	// 🧹 retensi: marker (bolt | db) + engine + cron
	var markers retRepo.MarkerStore
	switch cfg.RetentionMarkerStore {
	case "db":
		markers = retRepo.NewGormMarkerStore(db)
	default:
		bolt, err := retRepo.NewBoltMarkerStore(cfg.RetentionMarkerPath)
		if err != nil {
			return fmt.Errorf("retention marker store: %w", err)
		}
		defer func() {
			if err := bolt.Close(); err != nil {
				log.Warn().Err(err).Msg("close retention marker store")
			}
		}()
		markers = bolt
	}
	engine := retService.NewEngine(attRepo.NewAttendanceRepository(db), markers, cal)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ⏱ scheduler setelah DB siap
	sched := retScheduler.NewScheduler(engine, cfg.RetentionCron, cal.Location())
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("retention scheduler: %w", err)
	}
	// stop cron (tunggu job berjalan) sebelum marker store & DB ditutup
	defer sched.Stop()

	// ✅ Routes
	app := routes.NewApp(cfg)
	routes.SetupRoutes(app, routes.Dependencies{
		DB:        db,
		Config:    cfg,
		Calendar:  cal,
		Blob:      store,
		Retention: engine,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	listenErr := make(chan error, 1)
	go func() {
		log.Info().Msgf("✅ Listening on :%s", cfg.Port)
		listenErr <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("🛑 shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
	return nil
}
