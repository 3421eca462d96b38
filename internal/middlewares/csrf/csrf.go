package csrf

import (
	"crypto/subtle"
	"encoding/gob"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/security"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

const (
	tokenSessionKey = "_csrf"
	FormFieldName   = "csrf_token"
)

var (
	ErrTokenMissing  = errors.New("missing CSRF token")
	ErrTokenInvalid  = errors.New("invalid CSRF token")
	ErrTokenExpired  = errors.New("expired CSRF token")
	ErrCookieMissing = errors.New("missing CSRF cookie")
	ErrCookieInvalid = errors.New("CSRF cookie mismatch")
)

// TokenSet maps live tokens to their expiry. Multiple tokens may be live at
// once, one per rendered form.
type TokenSet map[string]time.Time

func init() {
	gob.Register(TokenSet{})
}

func getTokenSet(session *sessions.Session) TokenSet {
	set, ok := session.Get(tokenSessionKey).(TokenSet)
	if !ok {
		return TokenSet{}
	}
	return set
}

// purge drops expired tokens from the set. Called on every inspection.
func purge(set TokenSet) {
	now := time.Now()
	for token, expiresAt := range set {
		if now.After(expiresAt) {
			delete(set, token)
		}
	}
}

// Issue generates a fresh single-use token, registers it in the session and
// mirrors it in the double-submit cookie readable by client script.
func Issue(ctx *fiber.Ctx) string {
	session := sessions.Get(ctx)
	set := getTokenSet(session)
	purge(set)

	token := security.GenerateToken(params.CSRFTokenLength)
	set[token] = time.Now().Add(params.CSRFTokenExpiration)
	session.Set(tokenSessionKey, set)

	ctx.Cookie(&fiber.Cookie{
		Name:     params.CSRFCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(params.CSRFCookieExpiration),
		Secure:   ctx.Secure(),
		HTTPOnly: false, // double-submit cookie must be readable by client script
		SameSite: "Strict",
	})
	return token
}

// Consume validates token against the session's token set. Validation is
// single-use: a matching token is removed immediately, so replay fails.
func Consume(session *sessions.Session, token string) error {
	if token == "" {
		return ErrTokenMissing
	}
	set := getTokenSet(session)
	expiresAt, ok := set[token]
	if !ok {
		purge(set)
		session.Set(tokenSessionKey, set)
		return ErrTokenInvalid
	}
	delete(set, token)
	purge(set)
	session.Set(tokenSessionKey, set)
	if time.Now().After(expiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// extractToken reads the request token from the form field, the JSON body, or
// the custom headers, in that priority order.
func extractToken(ctx *fiber.Ctx) string {
	if token := ctx.FormValue(FormFieldName); token != "" {
		return token
	}
	if ctx.Is("json") {
		var body struct {
			Token string `json:"csrf_token"`
		}
		if err := json.Unmarshal(ctx.Body(), &body); err == nil && body.Token != "" {
			return body.Token
		}
	}
	for _, header := range []string{"X-CSRF-Token", "X-XSRF-Token", "CSRF-Token"} {
		if token := ctx.Get(header); token != "" {
			return token
		}
	}
	return ""
}

// VerifyDoubleSubmit checks the cookie-carried token against the given
// session-carried token in constant time. Layered on top of Consume, never a
// replacement for it.
func VerifyDoubleSubmit(ctx *fiber.Ctx, sessionToken string) error {
	cookieToken := ctx.Cookies(params.CSRFCookieName)
	if cookieToken == "" {
		return ErrCookieMissing
	}
	if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(sessionToken)) != 1 {
		return ErrCookieInvalid
	}
	return nil
}
