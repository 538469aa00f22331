package models

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Block is a directed block edge. A block is active while ExpiresAt is
// null or in the future; expired rows are swept by the janitor.
type Block struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID        int64          `gorm:"not null;uniqueIndex:user_blocks_ux,priority:1;column:user_id"`
	BlockedUserID int64          `gorm:"not null;uniqueIndex:user_blocks_ux,priority:2;column:blocked_user_id"`
	Reason        sql.NullString `gorm:"type:varchar(255);column:reason"`
	Metadata      datatypes.JSON `gorm:"column:metadata"`
	BlockedAt     time.Time      `gorm:"not null;column:blocked_at"`
	ExpiresAt     sql.NullTime   `gorm:"column:expires_at"`

	// Relationships
	User        *User `gorm:"foreignKey:UserID;references:ID"`
	BlockedUser *User `gorm:"foreignKey:BlockedUserID;references:ID"`
}

// TableName specifies the table name for Block
func (Block) TableName() string {
	return "user_blocks"
}

// Active reports whether the block is still in force at the given time.
func (b *Block) Active(now time.Time) bool {
	return !b.ExpiresAt.Valid || b.ExpiresAt.Time.After(now)
}
