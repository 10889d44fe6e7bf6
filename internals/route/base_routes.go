package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	databases "attendance_backend/internals/databases"
	"attendance_backend/internals/helpers/metrics"
)

func BaseRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Attendance API is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := databases.Ping(ctx, deps.DB); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"timezone":       deps.Calendar.Location().String(),
		})
	})

	app.Get("/metrics", metrics.Handler())

	// 📷 foto lokal (BLOB_BACKEND=local)
	if deps.Config.BlobBackend == "local" {
		app.Static("/uploads", deps.Config.UploadDir, fiber.Static{
			MaxAge: 86400,
		})
	}
}
