package models

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// AuditLogEntry is the append-only compliance trail for social actions.
// Rows are never updated or deleted.
type AuditLogEntry struct {
	ID           int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID       int64          `gorm:"not null;index;column:user_id"`
	TargetUserID sql.NullInt64  `gorm:"column:target_user_id"`
	Action       string         `gorm:"type:varchar(50);not null;index;column:action"`
	Source       sql.NullString `gorm:"type:varchar(50);column:source"`
	IPAddress    sql.NullString `gorm:"type:varchar(45);column:ip_address"`
	Metadata     datatypes.JSON `gorm:"column:metadata"`
	CreatedAt    time.Time      `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for AuditLogEntry
func (AuditLogEntry) TableName() string {
	return "social_audit_log"
}

// Audit actions
const (
	AuditFollowRequested = "follow.requested"
	AuditFollowAccepted  = "follow.accepted"
	AuditFollowApproved  = "follow.approved"
	AuditFollowDeclined  = "follow.declined"
	AuditFollowRemoved   = "follow.removed"
	AuditBlockApplied    = "block.applied"
	AuditBlockRemoved    = "block.removed"
	AuditMuteApplied     = "mute.applied"
	AuditMuteRemoved     = "mute.removed"
	AuditPrivacyUpdated  = "privacy.updated"
)
