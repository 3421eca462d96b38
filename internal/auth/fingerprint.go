package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/security"
)

// Fingerprint derives a stable client hash from request headers. Stored at
// login and re-checked on every request; a mismatch implies the session
// identifier is being replayed from a different client.
func (a *Authenticator) Fingerprint(ctx *fiber.Ctx) string {
	return security.CalculateHash(a.masterKey,
		ctx.Get(fiber.HeaderUserAgent),
		ctx.Get(fiber.HeaderAcceptLanguage),
		ctx.Get(fiber.HeaderAcceptEncoding),
	)
}
