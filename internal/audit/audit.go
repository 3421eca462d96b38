package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/tayothecoder/cornerfield-sub004/model"
)

var auditRepo AuditEventRepository
var initOnce sync.Once

func Initialize(repo AuditEventRepository) {
	initOnce.Do(func() {
		auditRepo = repo
	})
}

const (
	EventTypeLoginSuccess       = "login_success"
	EventTypeLoginFailure       = "login_failure"
	EventTypeLogout             = "logout"
	EventTypeSessionHijack      = "session_hijack_suspected"
	EventTypeCSRFFailure        = "csrf_failure"
	EventTypeImpersonationStart = "impersonation_start"
	EventTypeImpersonationStop  = "impersonation_stop"
	EventTypeInvestment         = "investment_created"
	EventTypeDeposit            = "deposit_completed"
	EventTypeWithdrawalRequest  = "withdrawal_requested"
	EventTypeMaintenanceToggle  = "maintenance_toggled"
	EventTypePasswordReset      = "password_reset"
)

// Record appends an audit event. detail is marshaled to JSON; audit failures
// are logged but never surfaced to callers.
func Record(ctx context.Context, event *model.AuditEvent, detail any) {
	if auditRepo == nil {
		return
	}
	if detail != nil {
		blob, err := json.Marshal(detail)
		if err == nil {
			event.Detail = string(blob)
		}
	}
	if err := auditRepo.RecordEvent(ctx, event); err != nil {
		slog.Error("Could not record audit event", "type", event.EventType, "error", err)
	}
}

type LoginRecord struct {
	UserID    uint
	Username  string
	IP        string
	UserAgent string
	Success   bool
	Reason    string
}

func RecordLogin(ctx context.Context, record LoginRecord) {
	eventType := EventTypeLoginFailure
	if record.Success {
		eventType = EventTypeLoginSuccess
	}
	Record(ctx, &model.AuditEvent{
		UserID:    record.UserID,
		Username:  record.Username,
		EventType: eventType,
		IP:        record.IP,
		UserAgent: record.UserAgent,
	}, map[string]string{"reason": record.Reason})
}

type CSRFFailureRecord struct {
	UserID    uint
	IP        string
	UserAgent string
	Referer   string
	Path      string
	Reason    string
}

func RecordCSRFFailure(ctx context.Context, record CSRFFailureRecord) {
	Record(ctx, &model.AuditEvent{
		UserID:    record.UserID,
		EventType: EventTypeCSRFFailure,
		IP:        record.IP,
		UserAgent: record.UserAgent,
	}, map[string]string{
		"referer": record.Referer,
		"path":    record.Path,
		"reason":  record.Reason,
	})
}

type ImpersonationRecord struct {
	AdminID      uint
	TargetUserID uint
	IP           string
	UserAgent    string
	Started      bool
}

func RecordImpersonation(ctx context.Context, record ImpersonationRecord) {
	eventType := EventTypeImpersonationStop
	if record.Started {
		eventType = EventTypeImpersonationStart
	}
	Record(ctx, &model.AuditEvent{
		UserID:    record.AdminID,
		EventType: eventType,
		IP:        record.IP,
		UserAgent: record.UserAgent,
	}, map[string]uint{"target_user_id": record.TargetUserID})
}
