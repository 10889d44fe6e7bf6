// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	controller "attendance_backend/internals/features/users/auth/controller"
	rateLimiter "attendance_backend/internals/middlewares"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, secret string, ttl time.Duration) {
	authController := controller.NewAuthController(db, secret, ttl)

	// ==========================
	// Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	// 🔐 Admin
	baseAuth.Get("/users",
		authMiddleware.AuthMiddleware(authMiddleware.AuthJWTOpts{Secret: secret, DB: db}),
		authMiddleware.OnlyRoles(constants.MsgAccessDenied, constants.AdminOnly...),
		authController.ListUsers,
	)
}
