package web

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/auth"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/users"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

const loginAction = "login"

// LoginHandler handles sign-in and sign-out.
type LoginHandler struct {
	userService   UserService
	authenticator *auth.Authenticator
}

func NewLoginHandler(userService UserService, authenticator *auth.Authenticator) *LoginHandler {
	return &LoginHandler{
		userService:   userService,
		authenticator: authenticator,
	}
}

func (h *LoginHandler) GetLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return ctx.Redirect("/")
	}
	flashMsg := session.Flash("notice")
	if flashMsg == "" && ctx.Query("expired") != "" {
		flashMsg = MsgLoginSessionExpired
	}
	return render.RenderLoginPage(ctx, render.LoginPageData{
		Identifier: ctx.Query("identifier"),
		CSRFToken:  csrf.Issue(ctx),
		FlashMsg:   flashMsg,
	})
}

// limiterKey ties login attempts to the client address and claimed identity.
func limiterKey(ctx *fiber.Ctx, identifier string) string {
	return fmt.Sprintf("%s:%s", ctx.IP(), identifier)
}

func (h *LoginHandler) PostLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return ctx.Redirect("/")
	}

	identifier := ctx.FormValue("identifier")
	password := ctx.FormValue("password")
	pageData := render.LoginPageData{Identifier: identifier}

	limiter := h.authenticator.Limiter()
	allowed, err := limiter.Allow(ctx.Context(), limiterKey(ctx, identifier), loginAction,
		params.LoginMaxAttempts, params.LoginAttemptWindow)
	if err != nil {
		slog.Error("Rate limiter unavailable", "error", err)
		return fiber.ErrInternalServerError
	}
	if !allowed {
		pageData.ErrorMsg = MsgTooManyFailedLogin
		pageData.StatusCode = fiber.StatusTooManyRequests
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderLoginPage(ctx, pageData)
	}

	user, err := h.userService.Authenticate(ctx.Context(), identifier, password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrWrongCredentials):
			pageData.ErrorMsg = MsgLoginWrongCredentials
		case errors.Is(err, users.ErrUserDisabled):
			pageData.ErrorMsg = MsgLoginAccountDisabled
		default:
			return err
		}
		audit.RecordLogin(ctx.Context(), audit.LoginRecord{
			Username:  identifier,
			IP:        ctx.IP(),
			UserAgent: ctx.Get(fiber.HeaderUserAgent),
			Success:   false,
			Reason:    pageData.ErrorMsg,
		})
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderLoginPage(ctx, pageData)
	}

	if err := limiter.Reset(ctx.Context(), limiterKey(ctx, identifier), loginAction); err != nil {
		slog.Error("Could not reset login attempts", "error", err)
	}
	if err := h.authenticator.Login(ctx, user); err != nil {
		return err
	}
	if err := h.userService.RecordLogin(ctx.Context(), user.ID, ctx.IP()); err != nil {
		slog.Error("Could not record login", "user", user.ID, "error", err)
	}

	if user.IsAdmin() {
		return ctx.Redirect("/admin")
	}
	return ctx.Redirect("/")
}

func (h *LoginHandler) PostLogout(ctx *fiber.Ctx) error {
	if err := h.authenticator.Logout(ctx); err != nil {
		return err
	}
	return ctx.Redirect("/login")
}
