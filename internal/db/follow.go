package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnsphere/socialgraph/internal/models"
)

// FollowRepository provides follow-relationship database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// FindRelationship retrieves the directed edge (followerID -> followingID)
func (r *FollowRepository) FindRelationship(ctx context.Context, followerID, followingID int64) (*models.FollowRelationship, error) {
	var rel models.FollowRelationship
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// Upsert inserts the relationship or, on a (follower_id, following_id)
// conflict, overwrites status and request attributes. Re-following a
// declined edge goes through here.
func (r *FollowRepository) Upsert(ctx context.Context, rel *models.FollowRelationship) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "source", "reason", "accepted_at", "metadata", "updated_at",
			}),
		}).
		Create(rel).Error
}

// Update persists field changes on an existing relationship row
func (r *FollowRepository) Update(ctx context.Context, rel *models.FollowRelationship) error {
	return r.db.WithContext(ctx).Save(rel).Error
}

// Delete removes the directed edge; missing rows are not an error
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.FollowRelationship{}).Error
}

// RemoveBetween deletes the edges between two users in both directions
func (r *FollowRepository) RemoveBetween(ctx context.Context, userID, otherID int64) error {
	return r.db.WithContext(ctx).
		Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.FollowRelationship{}).Error
}

// ListFollowers returns relationships targeting subjectID plus the total
// count before pagination, newest first. A non-empty search narrows by
// follower name or email, case-insensitive.
func (r *FollowRepository) ListFollowers(ctx context.Context, subjectID int64, status, search string, limit, offset int) ([]*models.FollowRelationship, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.FollowRelationship{}).
		Joins("JOIN users ON users.id = user_follows.follower_id").
		Where("user_follows.following_id = ?", subjectID)
	q = applyListFilters(q, status, search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rels []*models.FollowRelationship
	err := q.Preload("Follower").
		Order("user_follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rels).Error
	if err != nil {
		return nil, 0, err
	}
	return rels, total, nil
}

// ListFollowing returns relationships originating from subjectID plus the
// total count before pagination, newest first.
func (r *FollowRepository) ListFollowing(ctx context.Context, subjectID int64, status, search string, limit, offset int) ([]*models.FollowRelationship, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.FollowRelationship{}).
		Joins("JOIN users ON users.id = user_follows.following_id").
		Where("user_follows.follower_id = ?", subjectID)
	q = applyListFilters(q, status, search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rels []*models.FollowRelationship
	err := q.Preload("Following").
		Order("user_follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rels).Error
	if err != nil {
		return nil, 0, err
	}
	return rels, total, nil
}

func applyListFilters(q *gorm.DB, status, search string) *gorm.DB {
	if status != "" {
		q = q.Where("user_follows.status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"LOWER(users.first_name) LIKE LOWER(?) OR LOWER(users.last_name) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	return q
}

// MutualCandidate is a second-degree follow target with its distinct
// mutual-follower count.
type MutualCandidate struct {
	UserID      int64 `gorm:"column:user_id"`
	MutualCount int64 `gorm:"column:mutual_count"`
}

// MutualCandidates finds users followed by the accounts userID follows,
// excluding userID itself, anyone userID already follows, and the given
// exclusion set. Ranked by distinct mutual-follower count descending.
func (r *FollowRepository) MutualCandidates(ctx context.Context, userID int64, exclude []int64, limit int) ([]MutualCandidate, error) {
	q := r.db.WithContext(ctx).
		Table("user_follows AS direct").
		Select("second.following_id AS user_id, COUNT(DISTINCT second.follower_id) AS mutual_count").
		Joins("JOIN user_follows AS second ON second.follower_id = direct.following_id").
		Where("direct.follower_id = ? AND direct.status = ?", userID, models.FollowStatusAccepted).
		Where("second.status = ?", models.FollowStatusAccepted).
		Where("second.following_id <> ?", userID).
		Where("second.following_id NOT IN (SELECT following_id FROM user_follows WHERE follower_id = ?)", userID)
	if len(exclude) > 0 {
		q = q.Where("second.following_id NOT IN ?", exclude)
	}

	var candidates []MutualCandidate
	err := q.Group("second.following_id").
		Order("mutual_count DESC").
		Limit(limit).
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
