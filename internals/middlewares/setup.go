package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/configs"
	accessLog "attendance_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global sesuai urutan: recover → reqid/timeout → log → cors → limiter
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(cfg.RequestTimeout))
	app.Use(accessLog.LoggerMiddleware(cfg.Timezone))
	app.Use(CorsMiddleware(cfg.AllowedOrigins()))
	app.Use(GlobalRateLimiter())
}
