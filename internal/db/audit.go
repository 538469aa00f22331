package db

import (
	"context"

	"github.com/learnsphere/socialgraph/internal/models"
)

// AuditRepository appends to the social audit log. Entries are never
// updated or deleted.
type AuditRepository struct {
	*Repository
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(repo *Repository) *AuditRepository {
	return &AuditRepository{Repository: repo}
}

// Record appends an audit entry
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// EventRepository appends domain events for out-of-process consumers
type EventRepository struct {
	*Repository
}

// NewEventRepository creates a new event repository
func NewEventRepository(repo *Repository) *EventRepository {
	return &EventRepository{Repository: repo}
}

// Record appends a domain event
func (r *EventRepository) Record(ctx context.Context, event *models.DomainEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
