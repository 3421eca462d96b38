package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/handlers/web"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/users"
)

const transactionPageLimit = 50

// AccountHandler serves the authenticated JSON endpoints under /api/v1.
type AccountHandler struct {
	userService   web.UserService
	investService web.InvestService
}

func NewAccountHandler(userService web.UserService, investService web.InvestService) *AccountHandler {
	return &AccountHandler{
		userService:   userService,
		investService: investService,
	}
}

func (h *AccountHandler) GetMe(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return web.JSONError(ctx, fiber.StatusNotFound, "Account not found")
		}
		return err
	}
	return web.JSONSuccess(ctx, fiber.Map{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"full_name":      user.FullName,
		"role":           user.Role,
		"balance":        user.Balance,
		"profit_balance": user.ProfitBalance,
	})
}

func (h *AccountHandler) GetTransactions(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	transactions, err := h.investService.UserTransactions(ctx.Context(), session.UserID, transactionPageLimit)
	if err != nil {
		return err
	}
	return web.JSONSuccess(ctx, transactions)
}

func (h *AccountHandler) GetInvestments(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	investments, err := h.investService.UserInvestments(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	return web.JSONSuccess(ctx, investments)
}
