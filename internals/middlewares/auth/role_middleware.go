package auth

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/constants"
	helper "attendance_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError validasi role + custom error message (403)
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	if customForbiddenMessage == "" {
		customForbiddenMessage = constants.MsgAccessDenied
	}
	return func(c *fiber.Ctx) error {
		role := RoleFromCtx(c)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
