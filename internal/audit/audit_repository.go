package audit

import (
	"context"

	"github.com/tayothecoder/cornerfield-sub004/model"
	"gorm.io/gorm"
)

type AuditEventRepository interface {
	RecordEvent(ctx context.Context, event *model.AuditEvent) error
	Find(ctx context.Context, eventType string, limit int) ([]*model.AuditEvent, error)
}

type auditEventRepository struct {
	db *gorm.DB
}

func (r *auditEventRepository) RecordEvent(ctx context.Context, event *model.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *auditEventRepository) Find(ctx context.Context, eventType string, limit int) ([]*model.AuditEvent, error) {
	var events []*model.AuditEvent
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	err := query.Find(&events).Error
	return events, err
}

func NewAuditEventRepository(db *gorm.DB) AuditEventRepository {
	return &auditEventRepository{
		db: db,
	}
}
