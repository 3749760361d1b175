package models

import (
	"time"

	"gorm.io/datatypes"
)

// RefreshState records the outcome of the most recent refresh per scope
// (a ranking name or "global"). Its presence distinguishes a ranking that has
// never been refreshed from one that legitimately reconciled to zero members.
type RefreshState struct {
	Scope         string         `gorm:"primaryKey;type:text" json:"scope"`
	LastAttemptAt *time.Time     `json:"last_attempt_at"`
	LastSuccessAt *time.Time     `json:"last_success_at"`
	LastError     *string        `gorm:"type:text" json:"last_error"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb" json:"stats"`
}

func (RefreshState) TableName() string {
	return "refresh_state"
}
