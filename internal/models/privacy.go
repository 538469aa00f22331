package models

import (
	"time"

	"gorm.io/datatypes"
)

// PrivacySetting holds a user's social visibility policy. At most one row
// per user; a missing row means the defaults from DefaultPrivacySetting.
type PrivacySetting struct {
	UserID                 int64          `gorm:"primaryKey;column:user_id"`
	ProfileVisibility      string         `gorm:"type:varchar(20);not null;default:'public';column:profile_visibility"`
	FollowApprovalRequired bool           `gorm:"not null;default:false;column:follow_approval_required"`
	MessagePermission      string         `gorm:"type:varchar(20);not null;default:'followers';column:message_permission"`
	ShareActivity          bool           `gorm:"not null;default:true;column:share_activity"`
	Metadata               datatypes.JSON `gorm:"column:metadata"`
	UpdatedAt              time.Time      `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for PrivacySetting
func (PrivacySetting) TableName() string {
	return "user_privacy_settings"
}

// Profile visibility values
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// DefaultPrivacySetting returns the policy assumed for users who never
// saved one. The returned value is not persisted.
func DefaultPrivacySetting(userID int64) *PrivacySetting {
	return &PrivacySetting{
		UserID:                 userID,
		ProfileVisibility:      VisibilityPublic,
		FollowApprovalRequired: false,
		MessagePermission:      "followers",
		ShareActivity:          true,
		Metadata:               EmptyMetadata(),
	}
}
