package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeInvestment = "investment"
	TxTypeProfit     = "profit"
)

const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusRejected  = "rejected"
)

// Transaction is a ledger entry paired with every balance change.
type Transaction struct {
	ID            uint    `gorm:"primarykey"`
	UserID        uint    `gorm:"index;not null"`
	Type          string  `gorm:"size:16;not null;index"`
	Amount        float64 `gorm:"type:decimal(20,8);not null"`
	Currency      string  `gorm:"size:8"`
	Network       string  `gorm:"size:8"`
	WalletAddress string  `gorm:"size:128"`
	Status        string  `gorm:"size:16;default:pending;not null;index"`
	Reference     string  `gorm:"uniqueIndex;size:36;not null"`
	Detail        string  `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == 0 {
		t.ID = GenerateID()
	}
	return nil
}
