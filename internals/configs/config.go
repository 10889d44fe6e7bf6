package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"attendance_backend/internals/helpers/logger"
)

// Config dibaca dari ENV (dan .env kalau ada) saat start.
type Config struct {
	Port           string        `env:"PORT" env-default:"5000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"15s"`
	CorsOrigins    string        `env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://localhost:3000"`

	// Database
	DBDriver    string `env:"DB_DRIVER" env-default:"postgres"` // postgres | sqlite
	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBHost      string `env:"DB_HOST" env-default:"localhost"`
	DBPort      string `env:"DB_PORT" env-default:"5432"`
	DBName      string `env:"DB_NAME" env-default:"attendance"`
	DBSSLMode   string `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath  string `env:"SQLITE_PATH" env-default:"attendance.db"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"24h"`

	// Waktu sipil (semua tanggal absensi dihitung di zona ini)
	Timezone string `env:"APP_TIMEZONE" env-default:"Asia/Kolkata"`

	// Penyimpanan foto
	BlobBackend      string `env:"BLOB_BACKEND" env-default:"local"` // local | supabase
	UploadDir        string `env:"UPLOAD_DIR" env-default:"uploads"`
	PublicBaseURL    string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:5000"`
	SupabaseURL      string `env:"SUPABASE_PROJECT_URL"`
	SupabaseKey      string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseBucket   string `env:"SUPABASE_BUCKET" env-default:"attendance-photos"`
	MaxPhotoSizeKB   int    `env:"MAX_PHOTO_SIZE_KB" env-default:"5120"`
	PhotoMaxPixels   int    `env:"PHOTO_MAX_PIXELS" env-default:"1280"`
	PhotoWebPQuality int    `env:"PHOTO_WEBP_QUALITY" env-default:"80"`

	// Retensi
	RetentionMarkerStore string `env:"RETENTION_MARKER_STORE" env-default:"bolt"` // bolt | db
	RetentionMarkerPath  string `env:"RETENTION_MARKER_PATH" env-default:"last-cleanup.db"`
	RetentionCron        string `env:"RETENTION_CRON" env-default:"0 0 1 * *"`

	// Seed user awal (JSON), kosong → dilewati
	SeedUsersFile string `env:"SEED_USERS_FILE"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	LogJSON  bool   `env:"LOG_JSON" env-default:"false"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logger.Logger.Warn().Msg("⚠️ .env tidak ditemukan, pakai ENV dari sistem")
		} else {
			logger.Logger.Info().Msg("✅ .env file berhasil dimuat")
		}
	} else {
		logger.Logger.Info().Msg("🚀 Running in Railway, pakai ENV dari sistem")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate cek nilai yang tidak boleh kosong / salah ketik.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET belum diset")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER tidak dikenal: %q", c.DBDriver)
	}
	switch c.BlobBackend {
	case "local":
	case "supabase":
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("BLOB_BACKEND=supabase butuh SUPABASE_PROJECT_URL dan SUPABASE_SERVICE_ROLE_KEY")
		}
	default:
		return fmt.Errorf("BLOB_BACKEND tidak dikenal: %q", c.BlobBackend)
	}
	switch c.RetentionMarkerStore {
	case "bolt", "db":
	default:
		return fmt.Errorf("RETENTION_MARKER_STORE tidak dikenal: %q", c.RetentionMarkerStore)
	}
	return nil
}

// PostgresDSN membangun DSN dari DATABASE_URL atau DB_* terpisah.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=attendance&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// AllowedOrigins memecah CORS_ORIGINS (dipisah koma).
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
