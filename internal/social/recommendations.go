package social

import (
	"context"
	"time"

	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/telemetry"
)

// ListRecommendations returns follow suggestions for a user: stored,
// unconsumed entries first (best score first), topped up with ephemeral
// mutual-follower candidates when the stored set runs short. Synthesized
// entries are never written back.
func (s *Service) ListRecommendations(ctx context.Context, userID int64, limit int) ([]RecommendationView, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.list_recommendations")
	defer span.End()

	if limit <= 0 || limit > s.cfg.RecommendationLimit {
		limit = s.cfg.RecommendationLimit
	}

	st := newStores(s.db)
	stored, err := st.recs.ListUnconsumed(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]RecommendationView, 0, limit)
	exclude := make([]int64, 0, len(stored))
	for _, rec := range stored {
		views = append(views, RecommendationView{
			ID:                   rec.ID,
			UserID:               rec.UserID,
			RecommendedUserID:    rec.RecommendedUserID,
			Score:                rec.Score,
			MutualFollowersCount: rec.MutualFollowersCount,
			ReasonCode:           rec.ReasonCode,
			GeneratedAt:          rec.GeneratedAt,
		})
		exclude = append(exclude, rec.RecommendedUserID)
	}

	if remaining := limit - len(views); remaining > 0 {
		candidates, err := st.follows.MutualCandidates(ctx, userID, exclude, remaining)
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		for _, c := range candidates {
			views = append(views, RecommendationView{
				UserID:               userID,
				RecommendedUserID:    c.UserID,
				Score:                models.ScoreMutualFollowers,
				MutualFollowersCount: c.MutualCount,
				ReasonCode:           models.ReasonMutualFollowers,
				GeneratedAt:          now,
			})
		}
	}

	if err := s.attachRecommendedUsers(ctx, st, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Service) attachRecommendedUsers(ctx context.Context, st *stores, views []RecommendationView) error {
	if len(views) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.RecommendedUserID)
	}
	users, err := st.users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range views {
		views[i].RecommendedUser = byID[views[i].RecommendedUserID]
	}
	return nil
}
