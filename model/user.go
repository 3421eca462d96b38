package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User stores account identity, credentials and balances.
type User struct {
	ID            uint    `gorm:"primarykey"`
	Username      string  `gorm:"uniqueIndex;size:32;not null"`
	FullName      string  `gorm:"size:64;not null"`
	Email         string  `gorm:"uniqueIndex;size:256;not null"`
	Password      string  `gorm:"size:64;not null"`
	Role          string  `gorm:"size:16;default:user;not null"`
	Balance       float64 `gorm:"type:decimal(20,8);default:0;not null"`
	ProfitBalance float64 `gorm:"type:decimal(20,8);default:0;not null"`
	Disabled      bool    `gorm:"default:false;not null"`
	LastLoginAt   time.Time
	LastLoginIP   string        `gorm:"size:45"`
	Investments   []Investment  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Transactions  []Transaction `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
