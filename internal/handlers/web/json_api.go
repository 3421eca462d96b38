package web

import "github.com/gofiber/fiber/v2"

func JSONSuccess(ctx *fiber.Ctx, data interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func JSONError(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func JSONValidationError(ctx *fiber.Ctx, fieldErrors map[string]string) error {
	return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed",
		"errors":  fieldErrors,
	})
}
