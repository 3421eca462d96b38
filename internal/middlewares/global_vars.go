package middlewares

import "github.com/gofiber/fiber/v2"

// InjectGlobalVars exposes site-wide values (site name, base URL) to every
// handler through the request locals. Templates receive the same values
// through the render layer's global map.
func InjectGlobalVars(vars fiber.Map) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		for key, val := range vars {
			ctx.Locals(key, val)
		}
		return ctx.Next()
	}
}
