package sessions

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

type Config struct {
	Storage        fiber.Storage
	SessionMaxAge  time.Duration
	CookieSecure   bool
	CookieHttpOnly bool
	CookieName     string
}

func applyDefaults(conf Config) Config {
	if conf.SessionMaxAge <= 0 {
		conf.SessionMaxAge = params.SessionLifetime
	}
	if conf.CookieName == "" {
		conf.CookieName = "sid"
	}
	return conf
}

// Get returns the request's session. The middleware must have run first.
func Get(ctx *fiber.Ctx) *Session {
	return ctx.Locals(sessionContextKey).(*Session)
}

// Destroy clears all session state and ends the session.
func Destroy(ctx *fiber.Ctx) error {
	sess := ctx.Locals(sessionContextKey).(*Session)
	return sess.Destroy()
}

// Reset replaces the session with a fresh one holding data.
func Reset(ctx *fiber.Ctx, data SessionData) error {
	sess := ctx.Locals(sessionContextKey).(*Session)
	return sess.Reset(data)
}

// New returns the session middleware. Sessions are created lazily and saved
// at the end of the request when modified. Sessions older than the absolute
// age threshold have their identifier regenerated while keeping their data.
func New(config Config) fiber.Handler {
	config = applyDefaults(config)
	store := session.New(session.Config{
		Storage:           config.Storage,
		Expiration:        config.SessionMaxAge,
		CookieSecure:      config.CookieSecure,
		CookieHTTPOnly:    config.CookieHttpOnly,
		CookieSameSite:    "Strict",
		KeyLookup:         fmt.Sprintf("cookie:%s", config.CookieName),
		KeyGenerator:      generateSessionID,
		CookieSessionOnly: false,
	})

	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return err
		}

		session := newSession(sess)
		if session.SessionData.CreatedAt.IsZero() {
			session.SessionData.CreatedAt = time.Now()
		} else if time.Since(session.SessionData.CreatedAt) > params.SessionAbsoluteAge &&
			time.Since(session.SessionData.LastRegeneration) > params.SessionRegenerateInterval {
			if err := session.Regenerate(); err != nil {
				slog.Error("Could not regenerate session", "sid", sess.ID(), "error", err)
			}
		}
		ctx.Locals(sessionContextKey, session)

		if err := ctx.Next(); err != nil {
			return err
		}

		if session.dirty || len(session.Keys()) > 0 {
			if data := session.SessionData; data != (SessionData{}) {
				sess.Set(sessionDataKey, data)
			}
			return sess.Save()
		}
		return nil
	}
}
