package auth

import (
	"crypto/hmac"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

// Authenticator drives the session authentication state machine:
// anonymous -> authenticated -> (admin) -> impersonating.
type Authenticator struct {
	masterKey       string
	sessionLifetime time.Duration
	limiter         *RateLimiter
}

func New(masterKey string, sessionLifetime time.Duration, limiter *RateLimiter) *Authenticator {
	if sessionLifetime <= 0 {
		sessionLifetime = params.SessionLifetime
	}
	return &Authenticator{
		masterKey:       masterKey,
		sessionLifetime: sessionLifetime,
		limiter:         limiter,
	}
}

func (a *Authenticator) Limiter() *RateLimiter {
	return a.limiter
}

// Login transitions the session to authenticated. The session identifier is
// regenerated (fixation defense), the client fingerprint is captured and a
// fresh CSRF token is issued.
func (a *Authenticator) Login(ctx *fiber.Ctx, user *model.User) error {
	now := time.Now()
	err := sessions.Reset(ctx, sessions.SessionData{
		IP:               ctx.IP(),
		UserID:           user.ID,
		Role:             user.Role,
		Authenticated:    true,
		Fingerprint:      a.Fingerprint(ctx),
		CreatedAt:        now,
		LoginTime:        now,
		LastActivity:     now,
		LastRegeneration: now,
	})
	if err != nil {
		return err
	}
	csrf.Issue(ctx)
	audit.RecordLogin(ctx.Context(), audit.LoginRecord{
		UserID:    user.ID,
		Username:  user.Username,
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
		Success:   true,
	})
	return nil
}

// Logout destroys the session and records the event.
func (a *Authenticator) Logout(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		audit.Record(ctx.Context(), &model.AuditEvent{
			UserID:    session.UserID,
			EventType: audit.EventTypeLogout,
			IP:        ctx.IP(),
			UserAgent: ctx.Get(fiber.HeaderUserAgent),
		}, nil)
	}
	return sessions.Destroy(ctx)
}

// Check validates the session: authenticated flags present, idle time within
// the session lifetime, fingerprint matching. Any failure destroys the
// session and reports false, never an error to the caller. On success the
// activity timestamp refreshes and the session identifier rotates when the
// regeneration interval has elapsed.
func (a *Authenticator) Check(ctx *fiber.Ctx) bool {
	session := sessions.Get(ctx)
	if !session.IsAuthenticated() {
		return false
	}

	now := time.Now()
	if now.Sub(session.LastActivity) > a.sessionLifetime {
		sessions.Destroy(ctx)
		return false
	}

	if !hmac.Equal([]byte(session.Fingerprint), []byte(a.Fingerprint(ctx))) {
		audit.Record(ctx.Context(), &model.AuditEvent{
			UserID:    session.UserID,
			EventType: audit.EventTypeSessionHijack,
			IP:        ctx.IP(),
			UserAgent: ctx.Get(fiber.HeaderUserAgent),
		}, nil)
		sessions.Destroy(ctx)
		return false
	}

	session.SessionData.LastActivity = now
	if now.Sub(session.LastRegeneration) >= params.SessionRegenerateInterval {
		// bounds the window a captured identifier stays usable
		if err := session.Regenerate(); err != nil {
			sessions.Destroy(ctx)
			return false
		}
	}
	session.Save()
	return true
}

// StartImpersonation lets an admin assume target's non-admin identity. The
// admin's identity is snapshotted on the session for exact restoration.
func (a *Authenticator) StartImpersonation(ctx *fiber.Ctx, target *model.User) error {
	session := sessions.Get(ctx)
	if !session.IsAdmin() || session.IsImpersonating() {
		return ErrNotAdmin
	}
	if session.UserID == target.ID {
		return ErrSelfImpersonate
	}

	adminID, adminRole := session.UserID, session.Role
	session.SessionData.Impersonation = sessions.Impersonation{
		Active:    true,
		AdminID:   adminID,
		AdminRole: adminRole,
		StartedAt: time.Now(),
	}
	session.SessionData.UserID = target.ID
	session.SessionData.Role = model.RoleUser
	session.Save()

	audit.RecordImpersonation(ctx.Context(), audit.ImpersonationRecord{
		AdminID:      adminID,
		TargetUserID: target.ID,
		IP:           ctx.IP(),
		UserAgent:    ctx.Get(fiber.HeaderUserAgent),
		Started:      true,
	})
	return nil
}

// StopImpersonation restores the snapshotted admin identity. Returns false
// when the session is not impersonating.
func (a *Authenticator) StopImpersonation(ctx *fiber.Ctx) bool {
	session := sessions.Get(ctx)
	if !session.IsImpersonating() {
		return false
	}

	snap := session.SessionData.Impersonation
	targetID := session.UserID
	session.SessionData.UserID = snap.AdminID
	session.SessionData.Role = snap.AdminRole
	session.SessionData.Impersonation = sessions.Impersonation{}
	session.Save()

	audit.RecordImpersonation(ctx.Context(), audit.ImpersonationRecord{
		AdminID:      snap.AdminID,
		TargetUserID: targetID,
		IP:           ctx.IP(),
		UserAgent:    ctx.Get(fiber.HeaderUserAgent),
		Started:      false,
	})
	return true
}
