package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnsphere/socialgraph/internal/models"
)

// PrivacyRepository provides privacy-settings database operations
type PrivacyRepository struct {
	*Repository
}

// NewPrivacyRepository creates a new privacy repository
func NewPrivacyRepository(repo *Repository) *PrivacyRepository {
	return &PrivacyRepository{Repository: repo}
}

// GetForUser retrieves a user's privacy settings, falling back to the
// default policy when no row exists. The default is never persisted here;
// only an explicit Upsert writes a row.
func (r *PrivacyRepository) GetForUser(ctx context.Context, userID int64) (*models.PrivacySetting, error) {
	var setting models.PrivacySetting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultPrivacySetting(userID), nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert writes the settings row, overwriting an existing one
func (r *PrivacyRepository) Upsert(ctx context.Context, setting *models.PrivacySetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"profile_visibility", "follow_approval_required",
				"message_permission", "share_activity", "metadata", "updated_at",
			}),
		}).
		Create(setting).Error
}
