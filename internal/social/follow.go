package social

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/telemetry"
)

// FollowUser creates or refreshes the follow edge actorID -> targetID.
// The target's privacy policy at follow time decides whether the edge is
// accepted immediately or parked as pending. Re-following an already
// accepted edge is a no-op returning the existing relationship.
func (s *Service) FollowUser(ctx context.Context, actorID, targetID int64, input FollowInput) (*models.FollowRelationship, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.follow_user")
	defer span.End()

	if actorID == targetID {
		return nil, NewInvalidOperation("cannot follow yourself")
	}

	if _, err := s.requireUser(ctx, newStores(s.db), targetID); err != nil {
		return nil, err
	}

	var result *models.FollowRelationship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		if err := s.assertNotBlocked(ctx, st, actorID, targetID); err != nil {
			return err
		}

		privacy, err := st.privacy.GetForUser(ctx, targetID)
		if err != nil {
			return err
		}

		existing, err := st.follows.FindRelationship(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status == models.FollowStatusAccepted {
			result = existing
			return nil
		}

		requiresApproval := privacy.FollowApprovalRequired ||
			privacy.ProfileVisibility == models.VisibilityPrivate
		status := models.FollowStatusAccepted
		if requiresApproval {
			status = models.FollowStatusPending
		}

		now := time.Now().UTC()
		source := input.Source
		if source == "" {
			source = models.FollowSourceManual
		}
		rel := &models.FollowRelationship{
			FollowerID:  actorID,
			FollowingID: targetID,
			Status:      status,
			Source:      sql.NullString{String: source, Valid: true},
			Metadata:    models.MetadataFromMap(input.Metadata),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if input.Reason != "" {
			rel.Reason = sql.NullString{String: input.Reason, Valid: true}
		}
		if !requiresApproval {
			rel.AcceptedAt = sql.NullTime{Time: now, Valid: true}
		}
		if err := st.follows.Upsert(ctx, rel); err != nil {
			return err
		}
		stored, err := st.follows.FindRelationship(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		result = stored

		auditAction := models.AuditFollowAccepted
		eventType := models.EventFollowAccepted
		if requiresApproval {
			auditAction = models.AuditFollowRequested
			eventType = models.EventFollowRequested
		}
		payload := map[string]interface{}{
			"followerId":       actorID,
			"targetUserId":     targetID,
			"requiresApproval": requiresApproval,
		}
		if err := s.recordAudit(ctx, st, actorID, &targetID, auditAction, source, payload); err != nil {
			return err
		}
		if err := s.recordEvent(ctx, st, targetID, actorID, eventType, payload); err != nil {
			return err
		}

		if !requiresApproval {
			s.seedAcceptedFollow(ctx, st, actorID, targetID, "followed-back", models.ScoreFollowBack)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("follow processed",
		zap.Int64("follower_id", actorID),
		zap.Int64("following_id", targetID),
		zap.String("status", result.Status))
	return result, nil
}

// seedAcceptedFollow runs the recommendation fan-out for a follow that
// just became accepted: consume the suggestion that led here and nudge
// the target to follow back. Both writes are best-effort.
func (s *Service) seedAcceptedFollow(ctx context.Context, st *stores, followerID, targetID int64, consumeReason string, score float64) {
	s.runBestEffort("consume recommendation", func() error {
		return st.recs.MarkConsumed(ctx, followerID, targetID, consumeReason)
	}, zap.Int64("user_id", followerID))

	s.runBestEffort("seed reciprocal recommendation", func() error {
		return st.recs.Upsert(ctx, &models.Recommendation{
			UserID:            targetID,
			RecommendedUserID: followerID,
			Score:             score,
			ReasonCode:        models.ReasonFollowBack,
			Metadata:          models.EmptyMetadata(),
			GeneratedAt:       time.Now().UTC(),
		})
	}, zap.Int64("user_id", targetID))
}

// ApproveFollow accepts a pending request addressed to targetUserID. Only
// the target may approve.
func (s *Service) ApproveFollow(ctx context.Context, targetUserID, followerID, actorID int64) (*models.FollowRelationship, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.approve_follow")
	defer span.End()

	if actorID != targetUserID {
		return nil, NewForbidden("cannot approve follow requests for another user")
	}

	var result *models.FollowRelationship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		rel, err := st.follows.FindRelationship(ctx, followerID, targetUserID)
		if err != nil {
			return err
		}
		if rel == nil || rel.Status != models.FollowStatusPending {
			return NewNotFound("no pending follow request")
		}

		now := time.Now().UTC()
		rel.Status = models.FollowStatusAccepted
		rel.AcceptedAt = sql.NullTime{Time: now, Valid: true}
		rel.UpdatedAt = now
		if err := st.follows.Update(ctx, rel); err != nil {
			return err
		}
		result = rel

		payload := map[string]interface{}{
			"followerId":   followerID,
			"targetUserId": targetUserID,
		}
		if err := s.recordAudit(ctx, st, actorID, &followerID, models.AuditFollowApproved, "", payload); err != nil {
			return err
		}
		if err := s.recordEvent(ctx, st, targetUserID, actorID, models.EventFollowApproved, payload); err != nil {
			return err
		}

		s.seedAcceptedFollow(ctx, st, followerID, targetUserID, "approved", models.ScoreApprovalBack)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeclineFollow rejects a pending request addressed to targetUserID. The
// edge stays around as declined until a fresh follow request overwrites it.
func (s *Service) DeclineFollow(ctx context.Context, targetUserID, followerID, actorID int64) (*models.FollowRelationship, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.decline_follow")
	defer span.End()

	if actorID != targetUserID {
		return nil, NewForbidden("cannot decline follow requests for another user")
	}

	var result *models.FollowRelationship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		rel, err := st.follows.FindRelationship(ctx, followerID, targetUserID)
		if err != nil {
			return err
		}
		if rel == nil || rel.Status != models.FollowStatusPending {
			return NewNotFound("no pending follow request")
		}

		rel.Status = models.FollowStatusDeclined
		rel.Reason = sql.NullString{String: "Declined by user", Valid: true}
		rel.UpdatedAt = time.Now().UTC()
		if err := st.follows.Update(ctx, rel); err != nil {
			return err
		}
		result = rel

		payload := map[string]interface{}{
			"followerId":   followerID,
			"targetUserId": targetUserID,
		}
		if err := s.recordAudit(ctx, st, actorID, &followerID, models.AuditFollowDeclined, "", payload); err != nil {
			return err
		}
		if err := s.recordEvent(ctx, st, targetUserID, actorID, models.EventFollowDeclined, payload); err != nil {
			return err
		}

		s.runBestEffort("consume recommendation", func() error {
			return st.recs.MarkConsumed(ctx, followerID, targetUserID, "declined")
		}, zap.Int64("user_id", followerID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnfollowUser removes the edge actorID -> targetID. Removing an absent
// edge is a no-op returning nil.
func (s *Service) UnfollowUser(ctx context.Context, actorID, targetID int64) (*models.FollowRelationship, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.unfollow_user")
	defer span.End()

	if actorID == targetID {
		return nil, NewInvalidOperation("cannot unfollow yourself")
	}

	var removed *models.FollowRelationship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		rel, err := st.follows.FindRelationship(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if rel == nil {
			return nil
		}

		if err := st.follows.Delete(ctx, actorID, targetID); err != nil {
			return err
		}
		removed = rel

		payload := map[string]interface{}{
			"followerId":     actorID,
			"targetUserId":   targetID,
			"previousStatus": rel.Status,
		}
		if err := s.recordAudit(ctx, st, actorID, &targetID, models.AuditFollowRemoved, "", payload); err != nil {
			return err
		}
		if err := s.recordEvent(ctx, st, targetID, actorID, models.EventFollowRemoved, payload); err != nil {
			return err
		}

		// Reconnect prompt, ranked well below organic suggestions
		s.runBestEffort("seed reconnect recommendation", func() error {
			return st.recs.Upsert(ctx, &models.Recommendation{
				UserID:            actorID,
				RecommendedUserID: targetID,
				Score:             models.ScoreReconnect,
				ReasonCode:        models.ReasonReconnect,
				Metadata:          models.EmptyMetadata(),
				GeneratedAt:       time.Now().UTC(),
			})
		}, zap.Int64("user_id", actorID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
