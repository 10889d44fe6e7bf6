package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"attendance_backend/internals/helpers/logger"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log := logger.WithComponent("http")
			log.Error().
				Interface("panic", e).
				Str("path", c.Path()).
				Msg("🔥 panic recovered")
		},
	})
}
