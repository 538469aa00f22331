package models

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// FollowRelationship is a directed follow edge with an approval workflow.
// Uniqueness on (follower_id, following_id); self-edges are rejected
// before any row is written.
type FollowRelationship struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	FollowerID  int64          `gorm:"not null;uniqueIndex:user_follows_ux,priority:1;column:follower_id"`
	FollowingID int64          `gorm:"not null;uniqueIndex:user_follows_ux,priority:2;column:following_id"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending';column:status"`
	Source      sql.NullString `gorm:"type:varchar(50);column:source"`
	Reason      sql.NullString `gorm:"type:varchar(255);column:reason"`
	AcceptedAt  sql.NullTime   `gorm:"column:accepted_at"`
	Metadata    datatypes.JSON `gorm:"column:metadata"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time      `gorm:"not null;column:updated_at"`

	// Relationships
	Follower  *User `gorm:"foreignKey:FollowerID;references:ID"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID"`
}

// TableName specifies the table name for FollowRelationship
func (FollowRelationship) TableName() string {
	return "user_follows"
}

// Follow status values. A declined edge only leaves that state through a
// fresh follow request, which upserts the row back to pending or accepted.
const (
	FollowStatusPending  = "pending"
	FollowStatusAccepted = "accepted"
	FollowStatusDeclined = "declined"
)

// FollowSourceManual is the source recorded when the caller supplies none.
const FollowSourceManual = "manual"
