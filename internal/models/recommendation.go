package models

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Recommendation is a ranked follow suggestion. Consumed rows keep their
// consumed_at marker and drop out of fresh listings; they are only deleted
// by a block purge or the janitor's retention sweep.
type Recommendation struct {
	ID                   int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID               int64          `gorm:"not null;uniqueIndex:user_recommendations_ux,priority:1;column:user_id"`
	RecommendedUserID    int64          `gorm:"not null;uniqueIndex:user_recommendations_ux,priority:2;column:recommended_user_id"`
	Score                float64        `gorm:"not null;default:0;column:score"`
	MutualFollowersCount int64          `gorm:"not null;default:0;column:mutual_followers_count"`
	ReasonCode           string         `gorm:"type:varchar(50);not null;column:reason_code"`
	Metadata             datatypes.JSON `gorm:"column:metadata"`
	GeneratedAt          time.Time      `gorm:"not null;column:generated_at"`
	ConsumedAt           sql.NullTime   `gorm:"column:consumed_at"`
	ConsumedReason       sql.NullString `gorm:"type:varchar(50);column:consumed_reason"`

	// Relationships
	User            *User `gorm:"foreignKey:UserID;references:ID"`
	RecommendedUser *User `gorm:"foreignKey:RecommendedUserID;references:ID"`
}

// TableName specifies the table name for Recommendation
func (Recommendation) TableName() string {
	return "user_recommendations"
}

// Recommendation reason codes
const (
	ReasonFollowBack      = "follow_back_suggestion"
	ReasonMutualFollowers = "mutual_followers"
	ReasonReconnect       = "reconnect"
)

// Recommendation scores per origin
const (
	ScoreFollowBack      float64 = 75
	ScoreApprovalBack    float64 = 70
	ScoreMutualFollowers float64 = 60
	ScoreReconnect       float64 = 30
)
