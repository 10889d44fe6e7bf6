// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	attController "attendance_backend/internals/features/attendance/attendances/controller"
	attRepo "attendance_backend/internals/features/attendance/attendances/repository"
	attRoute "attendance_backend/internals/features/attendance/attendances/route"
	attService "attendance_backend/internals/features/attendance/attendances/service"
	authRoute "attendance_backend/internals/features/users/auth/route"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/blob"
	"attendance_backend/internals/helpers/dbtime"
	"attendance_backend/internals/helpers/logger"
	middlewares "attendance_backend/internals/middlewares"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

var startTime time.Time

// Dependencies semua yang sudah dibangun main() sebelum routing
type Dependencies struct {
	DB        *gorm.DB
	Config    *configs.Config
	Calendar  *dbtime.Calendar
	Blob      blob.Store
	Retention attController.Retention
}

// NewApp fiber.App dengan codec sonic + error handler JSON
func NewApp(cfg *configs.Config) *fiber.App {
	bodyLimit := 4 * 1024 * 1024
	if cfg.MaxPhotoSizeKB > 0 {
		// foto + field form
		bodyLimit = cfg.MaxPhotoSizeKB*1024 + 64*1024
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             bodyLimit,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app, cfg)
	return app
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	startTime = time.Now()
	log := logger.WithComponent("routes")
	cfg := deps.Config

	log.Info().Msg("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps)

	log.Info().Msg("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, deps.DB, cfg.JWTSecret, cfg.JWTTTL)

	// ===================== ATTENDANCE =====================
	log.Info().Msg("[INFO] Setting up AttendanceRoutes...")
	repo := attRepo.NewAttendanceRepository(deps.DB)
	svc := attService.NewAttendanceService(repo, deps.Blob, deps.Calendar)
	ctrl := attController.NewAttendanceController(
		svc, repo, deps.Calendar, deps.Retention,
		int64(cfg.MaxPhotoSizeKB)*1024,
	)
	auth := authMiddleware.AuthMiddleware(authMiddleware.AuthJWTOpts{
		Secret: cfg.JWTSecret,
		DB:     deps.DB,
	})
	attRoute.AttendanceRoutes(app, ctrl, auth)
}
