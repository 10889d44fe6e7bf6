package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	attModel "attendance_backend/internals/features/attendance/attendances/model"
	retModel "attendance_backend/internals/features/attendance/retention/model"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/logger"
)

// ConnectDB buka koneksi sesuai DB_DRIVER (postgres | sqlite).
func ConnectDB(cfg *configs.Config) (*gorm.DB, error) {
	log := logger.WithComponent("database")
	log.Info().Str("driver", cfg.DBDriver).Msg("🔌 Koneksi ke database...")

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath + "?_busy_timeout=5000&_foreign_keys=on")
	default:
		// PreferSimpleProtocol cocok untuk PgBouncer (transaction pooling)
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true,
		})
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("❌ Gagal konek DB: %w", err)
	}
	TunePool(db, cfg.DBDriver)

	log.Info().Msg("✅ DB connected.")
	return db, nil
}

// Open dipakai juga oleh test (sqlite).
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
		// user yang dihapus tidak ikut menghapus riwayat absensi
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
}

func TunePool(db *gorm.DB, driver string) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("pool tune err")
		return
	}
	if driver == "sqlite" {
		// satu writer saja
		sqlDB.SetMaxOpenConns(1)
		return
	}
	// ⚖️ Sesuaikan dengan limit Supabase/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate buat/ubah tabel users, attendances, retention_markers.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&attModel.AttendanceModel{},
		&retModel.RetentionMarkerModel{},
	)
}

func WarmUpQueries(db *gorm.DB) {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			logger.Logger.Warn().Err(err).Msg("warm-up ping err")
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsUniqueViolation: gorm (TranslateError), postgres 23505, atau sqlite UNIQUE.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
