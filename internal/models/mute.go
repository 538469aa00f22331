package models

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Mute is a directed, optionally time-boxed suppression edge. Unlike a
// block it never touches the follow graph.
type Mute struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64          `gorm:"not null;uniqueIndex:user_mutes_ux,priority:1;column:user_id"`
	MutedUserID int64          `gorm:"not null;uniqueIndex:user_mutes_ux,priority:2;column:muted_user_id"`
	Reason      sql.NullString `gorm:"type:varchar(255);column:reason"`
	Metadata    datatypes.JSON `gorm:"column:metadata"`
	MutedAt     time.Time      `gorm:"not null;column:muted_at"`
	MutedUntil  sql.NullTime   `gorm:"column:muted_until"`

	// Relationships
	User      *User `gorm:"foreignKey:UserID;references:ID"`
	MutedUser *User `gorm:"foreignKey:MutedUserID;references:ID"`
}

// TableName specifies the table name for Mute
func (Mute) TableName() string {
	return "user_mutes"
}
