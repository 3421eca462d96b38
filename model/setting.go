package model

import "time"

// Setting is a key-value site setting (maintenance flag, announcements).
type Setting struct {
	Key       string `gorm:"primarykey;size:64"`
	Value     string `gorm:"size:512;not null"`
	UpdatedAt time.Time
}

const (
	SettingMaintenanceMode = "maintenance_mode"
)
