package db

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm/clause"

	"github.com/learnsphere/socialgraph/internal/models"
)

// RecommendationRepository provides follow-suggestion database operations
type RecommendationRepository struct {
	*Repository
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(repo *Repository) *RecommendationRepository {
	return &RecommendationRepository{Repository: repo}
}

// Upsert inserts the suggestion or, on a (user_id, recommended_user_id)
// conflict, refreshes score, reason and ranking inputs. An already
// consumed row keeps its consumed marker.
func (r *RecommendationRepository) Upsert(ctx context.Context, rec *models.Recommendation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "recommended_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "mutual_followers_count", "reason_code", "metadata", "generated_at",
			}),
		}).
		Create(rec).Error
}

// ListUnconsumed returns fresh suggestions for a user, best score first
func (r *RecommendationRepository) ListUnconsumed(ctx context.Context, userID int64, limit int) ([]*models.Recommendation, error) {
	var recs []*models.Recommendation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Order("score DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// MarkConsumed stamps a suggestion as acted upon. Already consumed rows
// keep their original marker.
func (r *RecommendationRepository) MarkConsumed(ctx context.Context, userID, recommendedUserID int64, reason string) error {
	return r.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("user_id = ? AND recommended_user_id = ? AND consumed_at IS NULL", userID, recommendedUserID).
		Updates(map[string]interface{}{
			"consumed_at":     sql.NullTime{Time: nowUTC(), Valid: true},
			"consumed_reason": sql.NullString{String: reason, Valid: true},
		}).Error
}

// PurgeBetween deletes suggestions between two users in both directions.
// Called when one blocks the other.
func (r *RecommendationRepository) PurgeBetween(ctx context.Context, userID, otherID int64) error {
	return r.db.WithContext(ctx).
		Where("(user_id = ? AND recommended_user_id = ?) OR (user_id = ? AND recommended_user_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.Recommendation{}).Error
}

// DeleteConsumedBefore removes consumed suggestions older than the cutoff
func (r *RecommendationRepository) DeleteConsumedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("consumed_at IS NOT NULL AND consumed_at <= ?", cutoff).
		Delete(&models.Recommendation{})
	return res.RowsAffected, res.Error
}
