package web

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/invest"
	"github.com/tayothecoder/cornerfield-sub004/internal/mail"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/validator"
	"github.com/tayothecoder/cornerfield-sub004/model"
)

type InvestHandler struct {
	userService   UserService
	investService InvestService
	mailSender    mail.MailSender
}

func NewInvestHandler(userService UserService, investService InvestService, mailSender mail.MailSender) *InvestHandler {
	return &InvestHandler{
		userService:   userService,
		investService: investService,
		mailSender:    mailSender,
	}
}

func (h *InvestHandler) GetInvest(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	plans, err := h.investService.ActivePlans(ctx.Context())
	if err != nil {
		return err
	}
	return render.RenderInvestPage(ctx, render.InvestPageData{
		User:      user,
		Plans:     plans,
		CSRFToken: csrf.Issue(ctx),
	})
}

func (h *InvestHandler) PostInvest(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)

	formErrors := map[string]string{}
	planID, err := strconv.ParseUint(ctx.FormValue("plan_id"), 10, 32)
	if err != nil {
		formErrors["plan"] = "Select an investment plan."
	}
	rawAmount := strings.TrimSpace(ctx.FormValue("amount"))
	amount, err := validator.ParseAmount(rawAmount)
	if err != nil {
		formErrors["amount"] = err.Error()
	}
	if len(formErrors) > 0 {
		return h.renderInvestErrors(ctx, formErrors, "")
	}

	investment, err := h.investService.Invest(ctx.Context(), session.UserID, uint(planID), amount)
	if err != nil {
		switch {
		case errors.Is(err, invest.ErrPlanNotFound), errors.Is(err, invest.ErrPlanInactive):
			formErrors["plan"] = "This plan is not open for investment."
		case errors.Is(err, invest.ErrAmountOutOfRange):
			formErrors["amount"] = "Amount is outside the plan limits."
		case errors.Is(err, invest.ErrInsufficientBalance):
			return h.renderInvestErrors(ctx, nil, MsgInsufficientBalance)
		default:
			return err
		}
		return h.renderInvestErrors(ctx, formErrors, "")
	}

	audit.Record(ctx.Context(), &model.AuditEvent{
		EventType: audit.EventTypeInvestment,
		UserID:    session.UserID,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}, fiber.Map{"investment_id": investment.ID, "plan_id": investment.PlanID, "amount": investment.Amount})

	session.SetFlash("notice", MsgInvestSuccess)
	return ctx.Redirect("/")
}

func (h *InvestHandler) renderInvestErrors(ctx *fiber.Ctx, formErrors map[string]string, errorMsg string) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	plans, err := h.investService.ActivePlans(ctx.Context())
	if err != nil {
		return err
	}
	return render.RenderInvestPage(ctx, render.InvestPageData{
		User:       user,
		Plans:      plans,
		CSRFToken:  csrf.Issue(ctx),
		FormErrors: formErrors,
		ErrorMsg:   errorMsg,
	})
}

func (h *InvestHandler) GetDeposit(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	return render.RenderDepositPage(ctx, render.DepositPageData{
		User:      user,
		CSRFToken: csrf.Issue(ctx),
	})
}

// PostDeposit credits the session user's balance. It serves both the deposit
// form and the JSON API, answering in kind.
func (h *InvestHandler) PostDeposit(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)

	var req struct {
		Amount   string `json:"amount" form:"amount"`
		Currency string `json:"currency" form:"currency"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		if middlewares.IsAPIRequest(ctx) {
			return JSONError(ctx, fiber.StatusBadRequest, "Malformed request body")
		}
		return fiber.ErrBadRequest
	}

	formErrors := map[string]string{}
	amount, err := validator.ParseAmount(strings.TrimSpace(req.Amount))
	if err != nil {
		formErrors["amount"] = err.Error()
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := validator.ValidateCurrency(currency); err != nil {
		formErrors["currency"] = err.Error()
	}
	if len(formErrors) > 0 {
		if middlewares.IsAPIRequest(ctx) {
			return JSONValidationError(ctx, formErrors)
		}
		return h.renderDepositErrors(ctx, formErrors, "")
	}

	tx, err := h.investService.Deposit(ctx.Context(), session.UserID, amount, currency)
	if err != nil {
		return err
	}

	audit.Record(ctx.Context(), &model.AuditEvent{
		EventType: audit.EventTypeDeposit,
		UserID:    session.UserID,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}, fiber.Map{"reference": tx.Reference, "amount": tx.Amount, "currency": currency})

	if middlewares.IsAPIRequest(ctx) {
		return JSONSuccess(ctx, fiber.Map{
			"reference": tx.Reference,
			"amount":    tx.Amount,
			"currency":  tx.Currency,
			"status":    tx.Status,
		})
	}
	session.SetFlash("notice", MsgDepositReceived)
	return ctx.Redirect("/")
}

func (h *InvestHandler) renderDepositErrors(ctx *fiber.Ctx, formErrors map[string]string, errorMsg string) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	return render.RenderDepositPage(ctx, render.DepositPageData{
		User:       user,
		CSRFToken:  csrf.Issue(ctx),
		FormErrors: formErrors,
		ErrorMsg:   errorMsg,
	})
}

func (h *InvestHandler) GetWithdraw(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	return render.RenderWithdrawPage(ctx, render.WithdrawPageData{
		User:      user,
		CSRFToken: csrf.Issue(ctx),
	})
}

func (h *InvestHandler) PostWithdraw(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)

	rawAmount := strings.TrimSpace(ctx.FormValue("amount"))
	currency := strings.ToUpper(strings.TrimSpace(ctx.FormValue("currency")))
	network := strings.ToUpper(strings.TrimSpace(ctx.FormValue("network")))
	walletAddress := strings.TrimSpace(ctx.FormValue("wallet_address"))

	formErrors := map[string]string{}
	amount, err := validator.ParseAmount(rawAmount)
	if err != nil {
		formErrors["amount"] = err.Error()
	}
	if err := validator.ValidateNetwork(currency, network); err != nil {
		formErrors["network"] = err.Error()
	} else if err := validator.ValidateWalletAddress(walletAddress, currency); err != nil {
		formErrors["wallet_address"] = err.Error()
	}
	if len(formErrors) > 0 {
		return h.renderWithdrawErrors(ctx, formErrors, "")
	}

	tx, err := h.investService.Withdraw(ctx.Context(), session.UserID, amount, currency, network, walletAddress)
	if err != nil {
		if errors.Is(err, invest.ErrInsufficientBalance) {
			return h.renderWithdrawErrors(ctx, nil, MsgInsufficientBalance)
		}
		return err
	}

	audit.Record(ctx.Context(), &model.AuditEvent{
		EventType: audit.EventTypeWithdrawalRequest,
		UserID:    session.UserID,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}, fiber.Map{"reference": tx.Reference, "amount": tx.Amount, "currency": currency, "network": network})

	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err == nil {
		if err := mail.SendWithdrawalNotice(h.mailSender, user, tx); err != nil {
			slog.Error("Could not send withdrawal notice", "error", err)
		}
	}

	session.SetFlash("notice", MsgWithdrawSubmitted)
	return ctx.Redirect("/")
}

func (h *InvestHandler) renderWithdrawErrors(ctx *fiber.Ctx, formErrors map[string]string, errorMsg string) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	return render.RenderWithdrawPage(ctx, render.WithdrawPageData{
		User:       user,
		CSRFToken:  csrf.Issue(ctx),
		FormErrors: formErrors,
		ErrorMsg:   errorMsg,
	})
}
