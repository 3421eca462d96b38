package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IsAPIRequest classifies a request as API-style: an API path segment, a JSON
// Accept header, or an AJAX marker. A routing heuristic for choosing between
// JSON errors and redirects, not authoritative routing.
func IsAPIRequest(ctx *fiber.Ctx) bool {
	if strings.Contains(ctx.Path(), "/api/") {
		return true
	}
	if strings.Contains(ctx.Get(fiber.HeaderAccept), "application/json") {
		return true
	}
	return strings.EqualFold(ctx.Get("X-Requested-With"), "XMLHttpRequest")
}
