package models

import (
	"database/sql"
	"time"
)

// User is the platform identity referenced by the social graph. The social
// graph only reads user rows; account management lives in another service.
type User struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	FirstName string         `gorm:"type:varchar(100);not null;default:'';column:first_name"`
	LastName  string         `gorm:"type:varchar(100);not null;default:'';column:last_name"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex:users_email_ux;column:email"`
	AvatarURL sql.NullString `gorm:"type:varchar(1024);column:avatar_url"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
