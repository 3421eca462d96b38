package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
)

// Require returns a middleware that fails closed for unauthenticated (or,
// with requireAdmin, non-admin) sessions. API-classified requests receive a
// structured JSON error; browser requests redirect to the login page.
func (a *Authenticator) Require(requireAdmin bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		hadSession := sessions.Get(ctx).IsAuthenticated()
		if !a.Check(ctx) {
			if middlewares.IsAPIRequest(ctx) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   "Authentication required",
				})
			}
			if hadSession {
				// the session existed but failed validation, tell the user why
				return ctx.Redirect("/login?expired=1")
			}
			return ctx.Redirect("/login")
		}
		if requireAdmin && !sessions.Get(ctx).IsAdmin() {
			if middlewares.IsAPIRequest(ctx) {
				return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"success": false,
					"error":   "Admin privileges required",
				})
			}
			return render.RenderForbiddenPage(ctx)
		}
		return ctx.Next()
	}
}
