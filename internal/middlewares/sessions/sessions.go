package sessions

import (
	"encoding/gob"
	"log/slog"
	"time"

	"github.com/tayothecoder/cornerfield-sub004/internal/security"
	"github.com/tayothecoder/cornerfield-sub004/model"
)

func init() {
	gob.Register(SessionData{})
}

// Impersonation snapshots the acting admin's identity while the session
// temporarily assumes another user's identity.
type Impersonation struct {
	Active    bool
	AdminID   uint
	AdminRole string
	StartedAt time.Time
}

// SessionData is the typed session record. Fixed fields instead of a
// schema-less bag so missing-field bugs surface at compile time.
type SessionData struct {
	IP               string
	UserID           uint
	Role             string // user, admin, super_admin
	Authenticated    bool
	Fingerprint      string // hash of user-agent + accept headers, set at login
	CreatedAt        time.Time
	LoginTime        time.Time
	LastActivity     time.Time
	LastRegeneration time.Time
	Impersonation    Impersonation
}

// IsAuthenticated holds the invariant: authenticated implies a user id.
func (s *SessionData) IsAuthenticated() bool {
	return s.Authenticated && s.UserID != 0
}

func (s *SessionData) IsAdmin() bool {
	return s.IsAuthenticated() && (s.Role == model.RoleAdmin || s.Role == model.RoleSuperAdmin)
}

func (s *SessionData) IsImpersonating() bool {
	return s.IsAuthenticated() && s.Impersonation.Active
}

func generateSessionID() string {
	id, err := security.GenerateSecret(32)
	if err != nil {
		slog.Error("Could not generate session id", "error", err)
		return ""
	}
	return id
}
