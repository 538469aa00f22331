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

// BlockUser applies the block actorID -> targetID and hard-resets the
// relationship graph between the two: follow edges in both directions go
// away, mutes and recommendations between them are cleared best-effort.
func (s *Service) BlockUser(ctx context.Context, actorID, targetID int64, input BlockInput) (*models.Block, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.block_user")
	defer span.End()

	if actorID == targetID {
		return nil, NewInvalidOperation("cannot block yourself")
	}

	if _, err := s.requireUser(ctx, newStores(s.db), targetID); err != nil {
		return nil, err
	}

	var result *models.Block
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		block := &models.Block{
			UserID:        actorID,
			BlockedUserID: targetID,
			Metadata:      models.MetadataFromMap(input.Metadata),
			BlockedAt:     time.Now().UTC(),
		}
		if input.Reason != "" {
			block.Reason = sql.NullString{String: input.Reason, Valid: true}
		}
		if input.ExpiresAt != nil {
			block.ExpiresAt = sql.NullTime{Time: input.ExpiresAt.UTC(), Valid: true}
		}
		if err := st.blocks.Upsert(ctx, block); err != nil {
			return err
		}
		result = block

		if err := st.follows.RemoveBetween(ctx, actorID, targetID); err != nil {
			return err
		}

		s.runBestEffort("unmute both directions", func() error {
			return st.mutes.DeleteBetween(ctx, actorID, targetID)
		}, zap.Int64("user_id", actorID))

		s.runBestEffort("purge recommendations", func() error {
			return st.recs.PurgeBetween(ctx, actorID, targetID)
		}, zap.Int64("user_id", actorID))

		payload := map[string]interface{}{
			"userId":        actorID,
			"blockedUserId": targetID,
		}
		if err := s.recordAudit(ctx, st, actorID, &targetID, models.AuditBlockApplied, "", payload); err != nil {
			return err
		}
		return s.recordEvent(ctx, st, targetID, actorID, models.EventBlockApplied, payload)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user blocked",
		zap.Int64("user_id", actorID),
		zap.Int64("blocked_user_id", targetID))
	return result, nil
}

// UnblockUser removes the block actorID -> targetID. Unblocking never
// restores follow edges or recommendations the block purged. Removing an
// absent block is a no-op.
func (s *Service) UnblockUser(ctx context.Context, actorID, targetID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.unblock_user")
	defer span.End()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		existed, err := st.blocks.Delete(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if !existed {
			return nil
		}

		payload := map[string]interface{}{
			"userId":        actorID,
			"blockedUserId": targetID,
		}
		if err := s.recordAudit(ctx, st, actorID, &targetID, models.AuditBlockRemoved, "", payload); err != nil {
			return err
		}
		return s.recordEvent(ctx, st, targetID, actorID, models.EventBlockRemoved, payload)
	})
}

// MuteUser applies the mute actorID -> targetID. Without an explicit
// duration the mute is stored open-ended; the follow graph is untouched
// either way.
func (s *Service) MuteUser(ctx context.Context, actorID, targetID int64, input MuteInput) (*models.Mute, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.mute_user")
	defer span.End()

	if actorID == targetID {
		return nil, NewInvalidOperation("cannot mute yourself")
	}

	if _, err := s.requireUser(ctx, newStores(s.db), targetID); err != nil {
		return nil, err
	}

	var result *models.Mute
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		now := time.Now().UTC()
		durationMinutes := s.cfg.MuteDefaultDurationDays * 24 * 60
		mute := &models.Mute{
			UserID:      actorID,
			MutedUserID: targetID,
			Metadata:    models.MetadataFromMap(input.Metadata),
			MutedAt:     now,
		}
		if input.Reason != "" {
			mute.Reason = sql.NullString{String: input.Reason, Valid: true}
		}
		if input.DurationMinutes != nil {
			durationMinutes = *input.DurationMinutes
			mute.MutedUntil = sql.NullTime{
				Time:  now.Add(time.Duration(durationMinutes) * time.Minute),
				Valid: true,
			}
		}
		if err := st.mutes.Upsert(ctx, mute); err != nil {
			return err
		}
		result = mute

		return s.recordAudit(ctx, st, actorID, &targetID, models.AuditMuteApplied, "", map[string]interface{}{
			"userId":          actorID,
			"mutedUserId":     targetID,
			"durationMinutes": durationMinutes,
			"indefinite":      input.DurationMinutes == nil,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnmuteUser removes the mute actorID -> targetID; absent mutes are a
// no-op.
func (s *Service) UnmuteUser(ctx context.Context, actorID, targetID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "social.unmute_user")
	defer span.End()

	if actorID == targetID {
		return NewInvalidOperation("cannot unmute yourself")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		existed, err := st.mutes.Delete(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if !existed {
			return nil
		}

		return s.recordAudit(ctx, st, actorID, &targetID, models.AuditMuteRemoved, "", map[string]interface{}{
			"userId":      actorID,
			"mutedUserId": targetID,
		})
	})
}
