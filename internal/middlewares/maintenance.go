package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/settings"
)

// maintenance-exempt prefixes so admins can still sign in
var maintenanceExempt = []string{"/login", "/logout", "/static", "/healthz"}

// Maintenance gates non-admin traffic behind a maintenance page when the
// maintenance setting is on.
func Maintenance(settingsService *settings.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !settingsService.MaintenanceMode(ctx.Context()) {
			return ctx.Next()
		}
		for _, prefix := range maintenanceExempt {
			if strings.HasPrefix(ctx.Path(), prefix) {
				return ctx.Next()
			}
		}
		if session := sessions.Get(ctx); session.IsAdmin() {
			return ctx.Next()
		}
		if IsAPIRequest(ctx) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"error":   "Service is under maintenance",
			})
		}
		return render.RenderMaintenancePage(ctx)
	}
}
