package render

import (
	"github.com/gofiber/fiber/v2"
)

func renderStatusPage(ctx *fiber.Ctx, templateName string, status int, vars fiber.Map) error {
	body, err := RenderHTML(templateName, vars)
	if err != nil {
		return err
	}
	ctx.Set("Content-Type", "text/html; charset=utf-8")
	return ctx.Status(status).SendString(body)
}

func RenderInternalServerErrorPage(ctx *fiber.Ctx) error {
	return renderStatusPage(ctx, "error-internal", fiber.StatusInternalServerError, nil)
}

func RenderNotFoundPage(ctx *fiber.Ctx) error {
	return renderStatusPage(ctx, "error-not-found", fiber.StatusNotFound, nil)
}

func RenderForbiddenPage(ctx *fiber.Ctx) error {
	return renderStatusPage(ctx, "error-forbidden", fiber.StatusForbidden, nil)
}

func RenderBadRequestPage(ctx *fiber.Ctx) error {
	return renderStatusPage(ctx, "error-bad-request", fiber.StatusBadRequest, nil)
}

func RenderMaintenancePage(ctx *fiber.Ctx) error {
	return renderStatusPage(ctx, "maintenance", fiber.StatusServiceUnavailable, nil)
}

func RenderLoginPage(ctx *fiber.Ctx, data LoginPageData) error {
	statusCode := fiber.StatusOK
	if data.ErrorMsg != "" {
		statusCode = fiber.StatusUnauthorized
	}
	if data.StatusCode != 0 {
		statusCode = data.StatusCode
	}
	return renderStatusPage(ctx, "login", statusCode, fiber.Map{
		"identifier": data.Identifier,
		"csrfToken":  data.CSRFToken,
		"errorMsg":   data.ErrorMsg,
		"flashMsg":   data.FlashMsg,
	})
}

func RenderRegisterPage(ctx *fiber.Ctx, data RegisterPageData) error {
	return renderStatusPage(ctx, "register", fiber.StatusOK, fiber.Map{
		"username":      data.Username,
		"fullName":      data.FullName,
		"email":         data.Email,
		"csrfToken":     data.CSRFToken,
		"usernameError": data.FormErrors["username"],
		"fullNameError": data.FormErrors["full_name"],
		"passwordError": data.FormErrors["password"],
		"emailError":    data.FormErrors["email"],
		"errorMsg":      data.ErrorMsg,
	})
}

func RenderForgotPasswordPage(ctx *fiber.Ctx, data ForgotPasswordPageData) error {
	return renderStatusPage(ctx, "forgot-password", fiber.StatusOK, fiber.Map{
		"email":     data.Email,
		"csrfToken": data.CSRFToken,
		"errorMsg":  data.ErrorMsg,
		"infoMsg":   data.InfoMsg,
	})
}

func RenderResetPasswordPage(ctx *fiber.Ctx, data ResetPasswordPageData) error {
	return renderStatusPage(ctx, "reset-password", fiber.StatusOK, fiber.Map{
		"token":     data.Token,
		"csrfToken": data.CSRFToken,
		"errorMsg":  data.ErrorMsg,
	})
}

func RenderDashboardPage(ctx *fiber.Ctx, data DashboardPageData) error {
	return renderStatusPage(ctx, "dashboard", fiber.StatusOK, fiber.Map{
		"user":          data.User,
		"investments":   data.Investments,
		"transactions":  data.Transactions,
		"csrfToken":     data.CSRFToken,
		"flashMsg":      data.FlashMsg,
		"impersonating": data.Impersonating,
	})
}

func RenderInvestPage(ctx *fiber.Ctx, data InvestPageData) error {
	return renderStatusPage(ctx, "invest", fiber.StatusOK, fiber.Map{
		"user":        data.User,
		"plans":       data.Plans,
		"csrfToken":   data.CSRFToken,
		"amountError": data.FormErrors["amount"],
		"planError":   data.FormErrors["plan"],
		"errorMsg":    data.ErrorMsg,
	})
}

func RenderDepositPage(ctx *fiber.Ctx, data DepositPageData) error {
	return renderStatusPage(ctx, "deposit", fiber.StatusOK, fiber.Map{
		"user":          data.User,
		"csrfToken":     data.CSRFToken,
		"amountError":   data.FormErrors["amount"],
		"currencyError": data.FormErrors["currency"],
		"errorMsg":      data.ErrorMsg,
	})
}

func RenderWithdrawPage(ctx *fiber.Ctx, data WithdrawPageData) error {
	return renderStatusPage(ctx, "withdraw", fiber.StatusOK, fiber.Map{
		"user":         data.User,
		"csrfToken":    data.CSRFToken,
		"amountError":  data.FormErrors["amount"],
		"addressError": data.FormErrors["wallet_address"],
		"networkError": data.FormErrors["network"],
		"errorMsg":     data.ErrorMsg,
	})
}

func RenderAdminPage(ctx *fiber.Ctx, data AdminPageData) error {
	return renderStatusPage(ctx, "admin", fiber.StatusOK, fiber.Map{
		"users":           data.Users,
		"auditEvents":     data.AuditEvents,
		"maintenanceMode": data.MaintenanceMode,
		"csrfToken":       data.CSRFToken,
		"flashMsg":        data.FlashMsg,
	})
}
