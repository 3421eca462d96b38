package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan is an investment product offered to users.
type Plan struct {
	ID           uint    `gorm:"primarykey"`
	Name         string  `gorm:"uniqueIndex;size:64;not null"`
	Description  string  `gorm:"size:512"`
	MinAmount    float64 `gorm:"type:decimal(20,8);not null"`
	MaxAmount    float64 `gorm:"type:decimal(20,8);not null"`
	ROIPercent   float64 `gorm:"type:decimal(8,4);not null"` // total return over the plan duration
	DurationDays int     `gorm:"not null"`
	Active       bool    `gorm:"default:true;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == 0 {
		p.ID = GenerateID()
	}
	return nil
}
