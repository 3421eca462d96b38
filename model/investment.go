package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvestmentStatusActive    = "active"
	InvestmentStatusCompleted = "completed"
	InvestmentStatusCancelled = "cancelled"
)

// Investment records a user's stake in a plan.
type Investment struct {
	ID             uint    `gorm:"primarykey"`
	UserID         uint    `gorm:"index;not null"`
	PlanID         uint    `gorm:"index;not null"`
	Plan           Plan    `gorm:"foreignKey:PlanID;references:ID"`
	Amount         float64 `gorm:"type:decimal(20,8);not null"`
	ExpectedProfit float64 `gorm:"type:decimal(20,8);not null"`
	Status         string  `gorm:"size:16;default:active;not null;index"`
	StartAt        time.Time
	EndAt          time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == 0 {
		i.ID = GenerateID()
	}
	return nil
}
