package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnsphere/socialgraph/internal/models"
)

// BlockRepository provides block-edge database operations
type BlockRepository struct {
	*Repository
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(repo *Repository) *BlockRepository {
	return &BlockRepository{Repository: repo}
}

// Upsert inserts the block or, on a (user_id, blocked_user_id) conflict,
// refreshes reason, metadata and timestamps. Re-blocking extends rather
// than duplicates.
func (r *BlockRepository) Upsert(ctx context.Context, block *models.Block) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "blocked_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"reason", "metadata", "blocked_at", "expires_at",
			}),
		}).
		Create(block).Error
}

// Delete removes the directed block edge and reports whether one existed
func (r *BlockRepository) Delete(ctx context.Context, userID, blockedUserID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Delete(&models.Block{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindActive retrieves the block edge (userID -> blockedUserID) if it is
// currently in force (no expiry, or expiry in the future).
func (r *BlockRepository) FindActive(ctx context.Context, userID, blockedUserID int64) (*models.Block, error) {
	var block models.Block
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Where("expires_at IS NULL OR expires_at > ?", nowUTC()).
		First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &block, nil
}

// DeleteExpired removes block rows whose expiry has passed. Used by the
// sweeper; reads already filter on expiry, so this is purely hygiene.
func (r *BlockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", nowUTC()).
		Delete(&models.Block{})
	return res.RowsAffected, res.Error
}
