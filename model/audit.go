package model

import "time"

type AuditEvent struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"index"`                  // actor user id, zero for anonymous
	Username  string    `gorm:"size:64;index"`          // snapshot of username at event time
	EventType string    `gorm:"size:64;not null;index"` // login_success, csrf_failure...
	IP        string    `gorm:"size:45;not null"`       // IPv4/IPv6
	UserAgent string    `gorm:"size:512;not null"`
	Detail    string    `gorm:"type:json"` // free-form JSON context
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuditEvent) TableName() string {
	return "audit"
}
