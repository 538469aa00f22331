package social

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/learnsphere/socialgraph/internal/cache"
	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/telemetry"
)

// GetPrivacySettings returns a user's privacy policy, or the defaults if
// they never saved one. Users may only read their own settings.
func (s *Service) GetPrivacySettings(ctx context.Context, userID, actorID int64) (*models.PrivacySetting, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.get_privacy_settings")
	defer span.End()

	if actorID != userID {
		return nil, NewForbidden("cannot read another user's privacy settings")
	}

	if cached, err := s.cache.GetPrivacy(ctx, userID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil && err != cache.ErrCacheDisabled {
		s.logger.Debug("privacy cache read failed", zap.Error(err))
	}

	setting, err := newStores(s.db).privacy.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.runBestEffort("cache privacy settings", func() error {
		if err := s.cache.SetPrivacy(ctx, setting); err != nil && err != cache.ErrCacheDisabled {
			return err
		}
		return nil
	}, zap.Int64("user_id", userID))

	return setting, nil
}

// UpdatePrivacySettings applies a partial update to a user's policy and
// persists the merged row. Users may only update their own settings.
func (s *Service) UpdatePrivacySettings(ctx context.Context, userID, actorID int64, input PrivacyInput) (*models.PrivacySetting, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.update_privacy_settings")
	defer span.End()

	if actorID != userID {
		return nil, NewForbidden("cannot update another user's privacy settings")
	}
	if input.ProfileVisibility != nil && !validVisibility(*input.ProfileVisibility) {
		return nil, NewInvalidOperation("unknown profile visibility")
	}

	var result *models.PrivacySetting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := newStores(tx)

		setting, err := st.privacy.GetForUser(ctx, userID)
		if err != nil {
			return err
		}
		if input.ProfileVisibility != nil {
			setting.ProfileVisibility = *input.ProfileVisibility
		}
		if input.FollowApprovalRequired != nil {
			setting.FollowApprovalRequired = *input.FollowApprovalRequired
		}
		if input.MessagePermission != nil {
			setting.MessagePermission = *input.MessagePermission
		}
		if input.ShareActivity != nil {
			setting.ShareActivity = *input.ShareActivity
		}
		if input.Metadata != nil {
			setting.Metadata = models.MetadataFromMap(input.Metadata)
		}
		setting.UpdatedAt = time.Now().UTC()

		if err := st.privacy.Upsert(ctx, setting); err != nil {
			return err
		}
		result = setting

		snapshot := map[string]interface{}{
			"userId":                 setting.UserID,
			"profileVisibility":      setting.ProfileVisibility,
			"followApprovalRequired": setting.FollowApprovalRequired,
			"messagePermission":      setting.MessagePermission,
			"shareActivity":          setting.ShareActivity,
			"metadata":               models.MetadataToMap(setting.Metadata),
		}
		if err := s.recordAudit(ctx, st, actorID, nil, models.AuditPrivacyUpdated, "", snapshot); err != nil {
			return err
		}
		return s.recordEvent(ctx, st, userID, actorID, models.EventPrivacyUpdated, snapshot)
	})
	if err != nil {
		return nil, err
	}

	s.runBestEffort("invalidate privacy cache", func() error {
		if err := s.cache.InvalidatePrivacy(ctx, userID); err != nil && err != cache.ErrCacheDisabled {
			return err
		}
		return nil
	}, zap.Int64("user_id", userID))

	return result, nil
}

func validVisibility(v string) bool {
	switch v {
	case models.VisibilityPublic, models.VisibilityFollowers, models.VisibilityPrivate:
		return true
	}
	return false
}
