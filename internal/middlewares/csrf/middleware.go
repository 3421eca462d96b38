package csrf

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
)

type Config struct {
	// ExemptPrefixes lists exact path prefixes (webhook/IPN callbacks) that
	// skip CSRF protection. Prefix match, not substring match.
	ExemptPrefixes []string
	// DoubleSubmit additionally requires the cookie-carried token to match.
	DoubleSubmit bool
}

func isProtectedMethod(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}

func isExempt(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// New returns the CSRF middleware protecting all state-changing methods.
func New(config Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !isProtectedMethod(ctx.Method()) || isExempt(ctx.Path(), config.ExemptPrefixes) {
			return ctx.Next()
		}

		session := sessions.Get(ctx)
		token := extractToken(ctx)
		err := Consume(session, token)
		if err == nil && config.DoubleSubmit {
			err = VerifyDoubleSubmit(ctx, token)
		}
		if err != nil {
			audit.RecordCSRFFailure(ctx.Context(), audit.CSRFFailureRecord{
				UserID:    session.UserID,
				IP:        ctx.IP(),
				UserAgent: ctx.Get(fiber.HeaderUserAgent),
				Referer:   ctx.Get(fiber.HeaderReferer),
				Path:      ctx.Path(),
				Reason:    err.Error(),
			})
			if middlewares.IsAPIRequest(ctx) {
				return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"success": false,
					"error":   "CSRF validation failed",
				})
			}
			return render.RenderForbiddenPage(ctx)
		}
		return ctx.Next()
	}
}
