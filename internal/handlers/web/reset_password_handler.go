package web

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/mail"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/users"
	"github.com/tayothecoder/cornerfield-sub004/internal/validator"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

type ResetPasswordHandler struct {
	userService UserService
	mailSender  mail.MailSender
	baseURL     string
}

func NewResetPasswordHandler(userService UserService, mailSender mail.MailSender, baseURL string) *ResetPasswordHandler {
	return &ResetPasswordHandler{
		userService: userService,
		mailSender:  mailSender,
		baseURL:     baseURL,
	}
}

func (h *ResetPasswordHandler) GetForgotPassword(ctx *fiber.Ctx) error {
	return render.RenderForgotPasswordPage(ctx, render.ForgotPasswordPageData{
		CSRFToken: csrf.Issue(ctx),
	})
}

// PostForgotPassword always answers with the same message so account
// existence is not disclosed.
func (h *ResetPasswordHandler) PostForgotPassword(ctx *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(ctx.FormValue("email")))
	pageData := render.ForgotPasswordPageData{Email: email, InfoMsg: MsgResetLinkSent}

	if err := validator.ValidateEmail(email); err != nil {
		pageData.InfoMsg = ""
		pageData.ErrorMsg = err.Error()
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderForgotPasswordPage(ctx, pageData)
	}

	token, err := h.userService.GenerateResetToken(ctx.Context(), email)
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return err
	}
	if err == nil {
		resetLink := h.baseURL + "/reset-password?token=" + token
		expireMinutes := int(params.PasswordResetTokenExpiration.Minutes())
		if err := mail.SendResetPasswordLink(h.mailSender, email, resetLink, expireMinutes); err != nil {
			slog.Error("Could not send reset mail", "error", err)
		}
	}

	pageData.CSRFToken = csrf.Issue(ctx)
	return render.RenderForgotPasswordPage(ctx, pageData)
}

func (h *ResetPasswordHandler) GetResetPassword(ctx *fiber.Ctx) error {
	return render.RenderResetPasswordPage(ctx, render.ResetPasswordPageData{
		Token:     ctx.Query("token"),
		CSRFToken: csrf.Issue(ctx),
	})
}

func (h *ResetPasswordHandler) PostResetPassword(ctx *fiber.Ctx) error {
	token := ctx.FormValue("token")
	password := ctx.FormValue("password")
	confirm := ctx.FormValue("password_confirm")

	pageData := render.ResetPasswordPageData{Token: token}
	if password != confirm {
		pageData.ErrorMsg = MsgPasswordsDoNotMatch
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderResetPasswordPage(ctx, pageData)
	}
	if err := validator.ValidatePassword(password); err != nil {
		pageData.ErrorMsg = err.Error()
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderResetPasswordPage(ctx, pageData)
	}

	if err := h.userService.ResetPassword(ctx.Context(), token, password); err != nil {
		if errors.Is(err, users.ErrResetTokenInvalid) {
			pageData.ErrorMsg = MsgResetTokenInvalid
			pageData.CSRFToken = csrf.Issue(ctx)
			return render.RenderResetPasswordPage(ctx, pageData)
		}
		return err
	}

	audit.Record(ctx.Context(), &model.AuditEvent{
		EventType: audit.EventTypePasswordReset,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}, nil)

	session := sessions.Get(ctx)
	session.SetFlash("notice", MsgPasswordResetDone)
	return ctx.Redirect("/login")
}
