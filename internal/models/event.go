package models

import (
	"time"

	"gorm.io/datatypes"
)

// DomainEvent records an externally interesting state transition. Other
// subsystems consume these asynchronously; this service only appends.
type DomainEvent struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	EntityType  string         `gorm:"type:varchar(50);not null;index:domain_events_entity_ix,priority:1;column:entity_type"`
	EntityID    int64          `gorm:"not null;index:domain_events_entity_ix,priority:2;column:entity_id"`
	EventType   string         `gorm:"type:varchar(50);not null;index;column:event_type"`
	Payload     datatypes.JSON `gorm:"column:payload"`
	PerformedBy int64          `gorm:"not null;column:performed_by"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for DomainEvent
func (DomainEvent) TableName() string {
	return "domain_events"
}

// Domain event types emitted by the social graph
const (
	EventFollowRequested = "social.follow.requested"
	EventFollowAccepted  = "social.follow.accepted"
	EventFollowApproved  = "social.follow.approved"
	EventFollowDeclined  = "social.follow.declined"
	EventFollowRemoved   = "social.follow.removed"
	EventBlockApplied    = "social.block.applied"
	EventBlockRemoved    = "social.block.removed"
	EventPrivacyUpdated  = "social.privacy.updated"
)

// EntityTypeUser is the entity type for user-scoped domain events.
const EntityTypeUser = "user"
