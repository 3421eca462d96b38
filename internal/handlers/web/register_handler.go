package web

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/mail"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/security"
	"github.com/tayothecoder/cornerfield-sub004/internal/users"
	"github.com/tayothecoder/cornerfield-sub004/internal/validator"
)

type RegisterHandler struct {
	userService UserService
	mailSender  mail.MailSender
	baseURL     string
}

func NewRegisterHandler(userService UserService, mailSender mail.MailSender, baseURL string) *RegisterHandler {
	return &RegisterHandler{
		userService: userService,
		mailSender:  mailSender,
		baseURL:     baseURL,
	}
}

func validateRegisterForm(username, fullName, password, email string) map[string]string {
	formErrors := make(map[string]string)
	if err := validator.ValidateUsername(username); err != nil {
		formErrors["username"] = err.Error()
	}
	if err := validator.ValidateName(fullName); err != nil {
		formErrors["full_name"] = err.Error()
	}
	if err := validator.ValidatePassword(password); err != nil {
		formErrors["password"] = err.Error()
	}
	if err := validator.ValidateEmail(email); err != nil {
		formErrors["email"] = err.Error()
	}
	return formErrors
}

func (h *RegisterHandler) GetRegister(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return ctx.Redirect("/")
	}
	return render.RenderRegisterPage(ctx, render.RegisterPageData{
		CSRFToken: csrf.Issue(ctx),
	})
}

func (h *RegisterHandler) PostRegister(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return ctx.Redirect("/")
	}

	var (
		username = strings.ToLower(strings.TrimSpace(ctx.FormValue("username")))
		fullName = strings.TrimSpace(ctx.FormValue("full_name"))
		email    = strings.ToLower(strings.TrimSpace(ctx.FormValue("email")))
		password = ctx.FormValue("password")
	)

	pageData := render.RegisterPageData{
		Username: username,
		FullName: fullName,
		Email:    email,
	}

	if security.IsSuspicious(username) || security.IsSuspicious(fullName) {
		return fiber.ErrBadRequest
	}

	pageData.FormErrors = validateRegisterForm(username, fullName, password, email)
	if len(pageData.FormErrors) > 0 {
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderRegisterPage(ctx, pageData)
	}

	user, err := h.userService.CreateUser(ctx.Context(), users.CreateUserOptions{
		Username: username,
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUsernameTaken):
			pageData.FormErrors = map[string]string{"username": "Username is already taken."}
		case errors.Is(err, users.ErrEmailRegistered):
			pageData.FormErrors = map[string]string{"email": "Email is already registered."}
		default:
			return err
		}
		pageData.CSRFToken = csrf.Issue(ctx)
		return render.RenderRegisterPage(ctx, pageData)
	}

	if err := mail.SendWelcome(h.mailSender, user, h.baseURL+"/login"); err != nil {
		slog.Error("Could not send welcome mail", "user", user.ID, "error", err)
	}

	session.SetFlash("notice", MsgRegisterSuccess)
	return redirect(ctx, "/login", "identifier", username)
}
