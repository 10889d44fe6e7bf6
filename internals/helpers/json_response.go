// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   JSON responses
   - error  → {"error": "..."}
   - status → {"message": "...", ...extra}
=================================*/

// JsonError: error generic; 5xx tanpa pesan → "Server error"
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		if status >= 500 {
			message = "Server error"
		} else {
			message = utilsStatusMessage(status)
		}
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// JsonMessage: respon status (sukses maupun konflik jinak) dengan field tambahan opsional.
func JsonMessage(c *fiber.Ctx, status int, message string, extra fiber.Map) error {
	body := fiber.Map{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// JsonOK: body apa adanya, status 200
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonCreated: body apa adanya, status 201
func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// JsonList: list + metadata paginasi rata di root
func JsonList(c *fiber.Ctx, data any, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":         data,
		"page":         p.Page,
		"totalPages":   p.TotalPages,
		"totalRecords": p.TotalRecords,
	})
}

func utilsStatusMessage(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "Bad request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Access denied"
	case fiber.StatusNotFound:
		return "Not found"
	default:
		return "Error"
	}
}
