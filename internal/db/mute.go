package db

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/learnsphere/socialgraph/internal/models"
)

// MuteRepository provides mute-edge database operations
type MuteRepository struct {
	*Repository
}

// NewMuteRepository creates a new mute repository
func NewMuteRepository(repo *Repository) *MuteRepository {
	return &MuteRepository{Repository: repo}
}

// Upsert inserts the mute or, on a (user_id, muted_user_id) conflict,
// refreshes reason, metadata and the muted window.
func (r *MuteRepository) Upsert(ctx context.Context, mute *models.Mute) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "muted_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"reason", "metadata", "muted_at", "muted_until",
			}),
		}).
		Create(mute).Error
}

// Delete removes the directed mute edge and reports whether one existed
func (r *MuteRepository) Delete(ctx context.Context, userID, mutedUserID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND muted_user_id = ?", userID, mutedUserID).
		Delete(&models.Mute{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteBetween removes mute edges between two users in both directions
func (r *MuteRepository) DeleteBetween(ctx context.Context, userID, otherID int64) error {
	return r.db.WithContext(ctx).
		Where("(user_id = ? AND muted_user_id = ?) OR (user_id = ? AND muted_user_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.Mute{}).Error
}

// DeleteExpired removes mute rows whose window has closed
func (r *MuteRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("muted_until IS NOT NULL AND muted_until <= ?", nowUTC()).
		Delete(&models.Mute{})
	return res.RowsAffected, res.Error
}
