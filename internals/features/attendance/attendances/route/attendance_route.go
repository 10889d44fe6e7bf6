// file: internals/features/attendance/attendances/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/attendance/attendances/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

// AttendanceRoutes: /api/attendance/* (semua butuh JWT, /all khusus admin)
func AttendanceRoutes(app *fiber.App, ctrl *controller.AttendanceController, auth fiber.Handler) {
	g := app.Group("/api/attendance", auth)

	g.Post("/checkin", ctrl.CheckIn)
	g.Post("/checkout", ctrl.CheckOut)

	g.Get("/all",
		authMiddleware.OnlyRoles(constants.MsgAccessDenied, constants.AdminOnly...),
		ctrl.List,
	)
}
