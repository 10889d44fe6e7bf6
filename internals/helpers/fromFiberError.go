package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/helpers/logger"
)

// FromFiberError mengubah error (biasanya *fiber.Error) menjadi {"error": "..."}.
// Jika bukan *fiber.Error, fallback ke 500 "Server error"; detail hanya di log.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	logger.Logger.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("❌ Unhandled error")
	return JsonError(c, fiber.StatusInternalServerError, "Server error")
}

// ErrorHandler untuk fiber.Config
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
