package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
)

const dashboardTxLimit = 20

type DashboardHandler struct {
	userService   UserService
	investService InvestService
}

func NewDashboardHandler(userService UserService, investService InvestService) *DashboardHandler {
	return &DashboardHandler{
		userService:   userService,
		investService: investService,
	}
}

func (h *DashboardHandler) GetDashboard(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if err != nil {
		return err
	}
	investments, err := h.investService.UserInvestments(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	transactions, err := h.investService.UserTransactions(ctx.Context(), user.ID, dashboardTxLimit)
	if err != nil {
		return err
	}
	return render.RenderDashboardPage(ctx, render.DashboardPageData{
		User:          user,
		Investments:   investments,
		Transactions:  transactions,
		CSRFToken:     csrf.Issue(ctx),
		FlashMsg:      session.Flash("notice"),
		Impersonating: session.IsImpersonating(),
	})
}
