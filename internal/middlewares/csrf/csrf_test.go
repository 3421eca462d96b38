package csrf

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

func init() {
	if err := render.Initialize(nil, ""); err != nil {
		panic(err)
	}
}

// newTestApp wires sessions plus the CSRF middleware around two form routes.
// GET /form issues a token and returns it as the body; /form-expired issues a
// token that is already past its expiry.
func newTestApp(config Config) *fiber.App {
	app := fiber.New()
	app.Use(sessions.New(sessions.Config{Storage: memory.New()}))

	app.Get("/form", func(ctx *fiber.Ctx) error {
		return ctx.SendString(Issue(ctx))
	})
	app.Get("/form-expired", func(ctx *fiber.Ctx) error {
		token := Issue(ctx)
		session := sessions.Get(ctx)
		set := getTokenSet(session)
		set[token] = time.Now().Add(-time.Minute)
		session.Set(tokenSessionKey, set)
		return ctx.SendString(token)
	})

	app.Use(New(config))
	app.Post("/submit", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	app.Post("/webhook/ipn", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

// fetchToken performs a GET against path and returns the issued token together
// with the joined cookie header for follow-up requests.
func fetchToken(t *testing.T, app *fiber.App, path string) (token, cookie string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read token body: %v", err)
	}

	var pairs []string
	for _, c := range resp.Cookies() {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return string(body), strings.Join(pairs, "; ")
}

func postForm(t *testing.T, app *fiber.App, path, cookie, token string) *http.Response {
	t.Helper()
	form := url.Values{}
	if token != "" {
		form.Set(FormFieldName, token)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func TestTokenSingleUse(t *testing.T) {
	app := newTestApp(Config{})
	token, cookie := fetchToken(t, app, "/form")

	resp := postForm(t, app, "/submit", cookie, token)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first submit = %d, want 200", resp.StatusCode)
	}

	// replaying the same token must fail
	resp = postForm(t, app, "/submit", cookie, token)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("replayed submit = %d, want 403", resp.StatusCode)
	}
}

func TestMissingToken(t *testing.T) {
	app := newTestApp(Config{})
	_, cookie := fetchToken(t, app, "/form")

	resp := postForm(t, app, "/submit", cookie, "")
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("submit without token = %d, want 403", resp.StatusCode)
	}
}

func TestUnknownToken(t *testing.T) {
	app := newTestApp(Config{})
	_, cookie := fetchToken(t, app, "/form")

	resp := postForm(t, app, "/submit", cookie, "deadbeefdeadbeef")
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("submit with forged token = %d, want 403", resp.StatusCode)
	}
}

func TestExpiredToken(t *testing.T) {
	app := newTestApp(Config{})
	token, cookie := fetchToken(t, app, "/form-expired")

	resp := postForm(t, app, "/submit", cookie, token)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("submit with expired token = %d, want 403", resp.StatusCode)
	}
}

func TestMultipleLiveTokens(t *testing.T) {
	app := newTestApp(Config{})
	first, cookie := fetchToken(t, app, "/form")

	// a second rendered form must not invalidate the first form's token
	req := httptest.NewRequest(fiber.MethodGet, "/form", nil)
	req.Header.Set("Cookie", cookie)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("second GET /form failed: %v", err)
	}
	second, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read second token: %v", err)
	}
	resp.Body.Close()

	if postForm(t, app, "/submit", cookie, first).StatusCode != fiber.StatusOK {
		t.Fatalf("first token rejected")
	}
	if postForm(t, app, "/submit", cookie, string(second)).StatusCode != fiber.StatusOK {
		t.Fatalf("second token rejected")
	}
}

func TestExemptPrefix(t *testing.T) {
	app := newTestApp(Config{ExemptPrefixes: []string{"/webhook"}})

	resp := postForm(t, app, "/webhook/ipn", "", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("exempt webhook = %d, want 200", resp.StatusCode)
	}

	resp = postForm(t, app, "/submit", "", "")
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("non-exempt path = %d, want 403", resp.StatusCode)
	}
}

func TestSafeMethodsBypass(t *testing.T) {
	app := newTestApp(Config{})
	req := httptest.NewRequest(fiber.MethodGet, "/form", nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET = %d, want 200", resp.StatusCode)
	}
}

func TestHeaderToken(t *testing.T) {
	app := newTestApp(Config{})
	token, cookie := fetchToken(t, app, "/form")

	req := httptest.NewRequest(fiber.MethodPost, "/submit", nil)
	req.Header.Set("Cookie", cookie)
	req.Header.Set("X-CSRF-Token", token)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("POST with header token failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("header token = %d, want 200", resp.StatusCode)
	}
}

func TestDoubleSubmitCookieMismatch(t *testing.T) {
	app := newTestApp(Config{DoubleSubmit: true})
	token, cookie := fetchToken(t, app, "/form")

	// cookie matches the token as issued
	resp := postForm(t, app, "/submit", cookie, token)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("matching double-submit = %d, want 200", resp.StatusCode)
	}

	// fresh token but a stale cookie value must fail
	token2, cookie2 := fetchToken(t, app, "/form")
	tampered := strings.Replace(cookie2, params.CSRFCookieName+"="+token2, params.CSRFCookieName+"=tampered", 1)
	resp = postForm(t, app, "/submit", tampered, token2)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("mismatched double-submit = %d, want 403", resp.StatusCode)
	}
}
