package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/auth"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/settings"
	"github.com/tayothecoder/cornerfield-sub004/internal/users"
	"github.com/tayothecoder/cornerfield-sub004/model"
)

const (
	adminUserPageSize  = 50
	adminAuditPageSize = 50
)

type AdminHandler struct {
	userService   UserService
	authenticator *auth.Authenticator
	settings      *settings.Service
	auditRepo     audit.AuditEventRepository
}

func NewAdminHandler(userService UserService, authenticator *auth.Authenticator, settingsService *settings.Service, auditRepo audit.AuditEventRepository) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		authenticator: authenticator,
		settings:      settingsService,
		auditRepo:     auditRepo,
	}
}

func (h *AdminHandler) GetAdmin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	userList, err := h.userService.ListUsers(ctx.Context(), adminUserPageSize, (page-1)*adminUserPageSize)
	if err != nil {
		return err
	}
	auditEvents, err := h.auditRepo.Find(ctx.Context(), ctx.Query("event_type"), adminAuditPageSize)
	if err != nil {
		return err
	}
	return render.RenderAdminPage(ctx, render.AdminPageData{
		Users:           userList,
		AuditEvents:     auditEvents,
		MaintenanceMode: h.settings.MaintenanceMode(ctx.Context()),
		CSRFToken:       csrf.Issue(ctx),
		FlashMsg:        session.Flash("notice"),
	})
}

// PostImpersonate switches the admin session onto the target user's identity.
func (h *AdminHandler) PostImpersonate(ctx *fiber.Ctx) error {
	targetID, err := strconv.ParseUint(ctx.FormValue("user_id"), 10, 32)
	if err != nil {
		return fiber.ErrBadRequest
	}
	target, err := h.userService.GetUserByID(ctx.Context(), uint(targetID))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	if target.IsAdmin() {
		// admins may only impersonate regular accounts
		return render.RenderForbiddenPage(ctx)
	}
	if err := h.authenticator.StartImpersonation(ctx, target); err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAdmin):
			return render.RenderForbiddenPage(ctx)
		case errors.Is(err, auth.ErrSelfImpersonate):
			return fiber.ErrBadRequest
		}
		return err
	}
	session := sessions.Get(ctx)
	session.SetFlash("notice", MsgImpersonationStarted)
	return ctx.Redirect("/")
}

// PostStopImpersonation restores the admin identity saved at impersonation
// start and returns to the admin dashboard.
func (h *AdminHandler) PostStopImpersonation(ctx *fiber.Ctx) error {
	if !h.authenticator.StopImpersonation(ctx) {
		return ctx.Redirect("/")
	}
	session := sessions.Get(ctx)
	session.SetFlash("notice", MsgImpersonationStopped)
	return ctx.Redirect("/admin")
}

func (h *AdminHandler) PostMaintenance(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	on := ctx.FormValue("enabled") == "1" || ctx.FormValue("enabled") == "true"
	if err := h.settings.SetMaintenanceMode(ctx.Context(), on); err != nil {
		return err
	}
	audit.Record(ctx.Context(), &model.AuditEvent{
		UserID:    session.UserID,
		EventType: audit.EventTypeMaintenanceToggle,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}, fiber.Map{"enabled": on})
	session.SetFlash("notice", MsgMaintenanceToggled)
	return ctx.Redirect("/admin")
}
