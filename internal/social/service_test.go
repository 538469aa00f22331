package social

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/config"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	// In-memory SQLite is per-connection
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.PrivacySetting{},
		&models.Block{},
		&models.Mute{},
		&models.FollowRelationship{},
		&models.Recommendation{},
		&models.AuditLogEntry{},
		&models.DomainEvent{},
	))

	cfg := config.SocialConfig{
		DefaultPageSize:         20,
		MaxPageSize:             100,
		RecommendationLimit:     20,
		MuteDefaultDurationDays: 30,
	}
	return NewService(database, nil, cfg), database
}

func seedUser(t *testing.T, database *gorm.DB, id int64) {
	t.Helper()
	user := &models.User{
		ID:        id,
		FirstName: fmt.Sprintf("User%d", id),
		LastName:  "Test",
		Email:     fmt.Sprintf("user%d@example.com", id),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, database.Create(user).Error)
}

func seedPrivacy(t *testing.T, database *gorm.DB, userID int64, visibility string, approvalRequired bool) {
	t.Helper()
	setting := &models.PrivacySetting{
		UserID:                 userID,
		ProfileVisibility:      visibility,
		FollowApprovalRequired: approvalRequired,
		MessagePermission:      "followers",
		ShareActivity:          true,
		Metadata:               models.EmptyMetadata(),
		UpdatedAt:              time.Now().UTC(),
	}
	require.NoError(t, database.Create(setting).Error)
}

func countRows(t *testing.T, database *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := database.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

func TestFollowUserPublicTargetAccepted(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 10)
	seedUser(t, database, 99)
	seedPrivacy(t, database, 99, models.VisibilityPublic, false)

	rel, err := svc.FollowUser(ctx, 10, 99, FollowInput{})
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusAccepted, rel.Status)
	assert.True(t, rel.AcceptedAt.Valid)
	assert.Equal(t, models.FollowSourceManual, rel.Source.String)

	// Audit trail
	var entry models.AuditLogEntry
	require.NoError(t, database.Where("action = ?", models.AuditFollowAccepted).First(&entry).Error)
	assert.Equal(t, int64(10), entry.UserID)
	assert.Equal(t, int64(99), entry.TargetUserID.Int64)

	// Domain event with the documented payload
	var event models.DomainEvent
	require.NoError(t, database.Where("event_type = ?", models.EventFollowAccepted).First(&event).Error)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, float64(10), payload["followerId"])
	assert.Equal(t, float64(99), payload["targetUserId"])
	assert.Equal(t, false, payload["requiresApproval"])

	// Reciprocal follow-back suggestion for the target
	var rec models.Recommendation
	require.NoError(t, database.Where("user_id = ? AND recommended_user_id = ?", 99, 10).First(&rec).Error)
	assert.Equal(t, models.ScoreFollowBack, rec.Score)
	assert.Equal(t, models.ReasonFollowBack, rec.ReasonCode)
}

func TestFollowUserPrivateTargetPending(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 20)
	seedUser(t, database, 99)
	seedPrivacy(t, database, 99, models.VisibilityPrivate, false)

	rel, err := svc.FollowUser(ctx, 20, 99, FollowInput{})
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusPending, rel.Status)
	assert.False(t, rel.AcceptedAt.Valid)

	assert.EqualValues(t, 1, countRows(t, database, &models.AuditLogEntry{}, "action = ?", models.AuditFollowRequested))
	assert.EqualValues(t, 1, countRows(t, database, &models.DomainEvent{}, "event_type = ?", models.EventFollowRequested))
	// Pending follows never seed recommendations
	assert.EqualValues(t, 0, countRows(t, database, &models.Recommendation{}, ""))
}

func TestFollowUserApprovalRequiredPending(t *testing.T) {
	svc, database := newTestService(t)
	seedUser(t, database, 1)
	seedUser(t, database, 2)
	seedPrivacy(t, database, 2, models.VisibilityPublic, true)

	rel, err := svc.FollowUser(context.Background(), 1, 2, FollowInput{})
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusPending, rel.Status)
}

func TestFollowUserDefaultPrivacyAccepts(t *testing.T) {
	svc, database := newTestService(t)
	seedUser(t, database, 1)
	seedUser(t, database, 2)
	// No privacy row: defaults are public, no approval

	rel, err := svc.FollowUser(context.Background(), 1, 2, FollowInput{})
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusAccepted, rel.Status)
}

func TestFollowUserIdempotentWhenAccepted(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)

	first, err := svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)
	second, err := svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.FollowStatusAccepted, second.Status)
	assert.EqualValues(t, 1, countRows(t, database, &models.FollowRelationship{}, ""))
	// The second call must not re-audit
	assert.EqualValues(t, 1, countRows(t, database, &models.AuditLogEntry{}, "action = ?", models.AuditFollowAccepted))
}

func TestSelfActionsRejected(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 5)

	_, err := svc.FollowUser(ctx, 5, 5, FollowInput{})
	assert.Equal(t, 400, StatusOf(err))
	_, err = svc.BlockUser(ctx, 5, 5, BlockInput{})
	assert.Equal(t, 400, StatusOf(err))
	_, err = svc.MuteUser(ctx, 5, 5, MuteInput{})
	assert.Equal(t, 400, StatusOf(err))
	_, err = svc.UnfollowUser(ctx, 5, 5)
	assert.Equal(t, 400, StatusOf(err))

	// Zero writes of any kind
	assert.EqualValues(t, 0, countRows(t, database, &models.AuditLogEntry{}, ""))
	assert.EqualValues(t, 0, countRows(t, database, &models.DomainEvent{}, ""))
	assert.EqualValues(t, 0, countRows(t, database, &models.FollowRelationship{}, ""))
}

func TestFollowUnknownTargetNotFound(t *testing.T) {
	svc, database := newTestService(t)
	seedUser(t, database, 1)

	_, err := svc.FollowUser(context.Background(), 1, 12345, FollowInput{})
	assert.Equal(t, 404, StatusOf(err))
}

func TestFollowBlockedDirections(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)

	// Actor blocks target: follow conflicts until the actor unblocks
	_, err := svc.BlockUser(ctx, 1, 2, BlockInput{})
	require.NoError(t, err)
	_, err = svc.FollowUser(ctx, 1, 2, FollowInput{})
	assert.Equal(t, 409, StatusOf(err))

	// Target blocks actor: forbidden
	require.NoError(t, svc.UnblockUser(ctx, 1, 2))
	_, err = svc.BlockUser(ctx, 2, 1, BlockInput{})
	require.NoError(t, err)
	_, err = svc.FollowUser(ctx, 1, 2, FollowInput{})
	assert.Equal(t, 403, StatusOf(err))
}

func TestApproveFollow(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 30)
	seedUser(t, database, 12)
	seedPrivacy(t, database, 12, models.VisibilityPublic, true)

	_, err := svc.FollowUser(ctx, 30, 12, FollowInput{})
	require.NoError(t, err)

	// Only the target may approve
	_, err = svc.ApproveFollow(ctx, 12, 30, 99)
	assert.Equal(t, 403, StatusOf(err))
	assert.EqualValues(t, 0, countRows(t, database, &models.AuditLogEntry{}, "action = ?", models.AuditFollowApproved))

	rel, err := svc.ApproveFollow(ctx, 12, 30, 12)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusAccepted, rel.Status)
	assert.True(t, rel.AcceptedAt.Valid)

	var rec models.Recommendation
	require.NoError(t, database.Where("user_id = ? AND recommended_user_id = ?", 12, 30).First(&rec).Error)
	assert.Equal(t, models.ScoreApprovalBack, rec.Score)

	// Approving again: the request is no longer pending
	_, err = svc.ApproveFollow(ctx, 12, 30, 12)
	assert.Equal(t, 404, StatusOf(err))
}

func TestDeclineFollow(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)
	seedPrivacy(t, database, 2, models.VisibilityPrivate, false)

	_, err := svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)

	rel, err := svc.DeclineFollow(ctx, 2, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusDeclined, rel.Status)
	assert.Equal(t, "Declined by user", rel.Reason.String)
	assert.EqualValues(t, 0, countRows(t, database, &models.Recommendation{}, "reason_code = ?", models.ReasonFollowBack))

	// Declining twice requires a pending request
	_, err = svc.DeclineFollow(ctx, 2, 1, 2)
	assert.Equal(t, 404, StatusOf(err))

	// A fresh follow overwrites the declined edge
	again, err := svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusPending, again.Status)
	assert.EqualValues(t, 1, countRows(t, database, &models.FollowRelationship{}, ""))
}

func TestUnfollowUser(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)

	// Unfollowing an absent edge is a no-op
	removed, err := svc.UnfollowUser(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, removed)

	_, err = svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)

	removed, err = svc.UnfollowUser(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, models.FollowStatusAccepted, removed.Status)
	assert.EqualValues(t, 0, countRows(t, database, &models.FollowRelationship{}, ""))

	var event models.DomainEvent
	require.NoError(t, database.Where("event_type = ?", models.EventFollowRemoved).First(&event).Error)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, models.FollowStatusAccepted, payload["previousStatus"])

	// Low-score reconnect prompt toward the old target
	var rec models.Recommendation
	require.NoError(t, database.Where("user_id = ? AND recommended_user_id = ?", 1, 2).First(&rec).Error)
	assert.Equal(t, models.ScoreReconnect, rec.Score)
	assert.Equal(t, models.ReasonReconnect, rec.ReasonCode)
}

func TestBlockSupersedesFollow(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 10)
	seedUser(t, database, 99)

	_, err := svc.FollowUser(ctx, 10, 99, FollowInput{})
	require.NoError(t, err)
	_, err = svc.FollowUser(ctx, 99, 10, FollowInput{})
	require.NoError(t, err)
	_, err = svc.MuteUser(ctx, 10, 99, MuteInput{})
	require.NoError(t, err)

	_, err = svc.BlockUser(ctx, 99, 10, BlockInput{Reason: "spam"})
	require.NoError(t, err)

	// No follow edges survive in either direction
	assert.EqualValues(t, 0, countRows(t, database, &models.FollowRelationship{}, ""))
	// Mutes between the two are cleared
	assert.EqualValues(t, 0, countRows(t, database, &models.Mute{}, ""))
	// Recommendations between the two are purged
	assert.EqualValues(t, 0, countRows(t, database, &models.Recommendation{},
		"(user_id = ? AND recommended_user_id = ?) OR (user_id = ? AND recommended_user_id = ?)", 10, 99, 99, 10))

	var block models.Block
	require.NoError(t, database.Where("user_id = ? AND blocked_user_id = ?", 99, 10).First(&block).Error)
	assert.Equal(t, "spam", block.Reason.String)
}

func TestUnblockDoesNotRestore(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 77)

	_, err := svc.FollowUser(ctx, 1, 77, FollowInput{})
	require.NoError(t, err)
	_, err = svc.BlockUser(ctx, 1, 77, BlockInput{})
	require.NoError(t, err)
	require.NoError(t, svc.UnblockUser(ctx, 1, 77))

	assert.EqualValues(t, 0, countRows(t, database, &models.Block{}, ""))
	assert.EqualValues(t, 0, countRows(t, database, &models.FollowRelationship{}, ""))
	assert.EqualValues(t, 1, countRows(t, database, &models.AuditLogEntry{}, "action = ?", models.AuditBlockRemoved))

	// Unblocking again is a quiet no-op
	require.NoError(t, svc.UnblockUser(ctx, 1, 77))
	assert.EqualValues(t, 1, countRows(t, database, &models.AuditLogEntry{}, "action = ?", models.AuditBlockRemoved))
}

func TestReblockRefreshesRow(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)

	_, err := svc.BlockUser(ctx, 1, 2, BlockInput{Reason: "first"})
	require.NoError(t, err)
	_, err = svc.BlockUser(ctx, 1, 2, BlockInput{Reason: "second"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, database, &models.Block{}, ""))
	var block models.Block
	require.NoError(t, database.First(&block).Error)
	assert.Equal(t, "second", block.Reason.String)
}

func TestMuteDurations(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)
	seedUser(t, database, 3)

	// No explicit duration: indefinite
	mute, err := svc.MuteUser(ctx, 1, 2, MuteInput{})
	require.NoError(t, err)
	assert.False(t, mute.MutedUntil.Valid)

	// Explicit duration sets the window
	minutes := 90
	mute, err = svc.MuteUser(ctx, 1, 3, MuteInput{DurationMinutes: &minutes})
	require.NoError(t, err)
	require.True(t, mute.MutedUntil.Valid)
	expected := mute.MutedAt.Add(90 * time.Minute)
	assert.WithinDuration(t, expected, mute.MutedUntil.Time, time.Second)

	require.NoError(t, svc.UnmuteUser(ctx, 1, 2))
	assert.EqualValues(t, 1, countRows(t, database, &models.Mute{}, ""))
}

func TestListFollowersPrivacyGate(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1) // subject
	seedUser(t, database, 2) // follower viewer
	seedUser(t, database, 3) // stranger
	seedUser(t, database, 4) // blocked viewer
	seedPrivacy(t, database, 1, models.VisibilityFollowers, false)

	_, err := svc.FollowUser(ctx, 2, 1, FollowInput{})
	require.NoError(t, err)
	_, err = svc.BlockUser(ctx, 1, 4, BlockInput{})
	require.NoError(t, err)

	// Stranger is denied for privacy
	_, err = svc.ListFollowers(ctx, 1, 3, ListQuery{})
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 403, se.Status)
	assert.Equal(t, DenyReasonPrivacy, se.Reason)

	// Blocked viewer is denied as blocked
	_, err = svc.ListFollowers(ctx, 1, 4, ListQuery{})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, DenyReasonBlocked, se.Reason)

	// An accepted follower sees the list
	page, err := svc.ListFollowers(ctx, 1, 2, ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].User.ID)
	assert.True(t, page.ViewerContext.ViewerFollowsSubject)
	assert.False(t, page.ViewerContext.SubjectFollowsViewer)

	// The subject always sees their own list
	_, err = svc.ListFollowers(ctx, 1, 1, ListQuery{})
	require.NoError(t, err)
}

func TestListFollowingSkipsVisibilityCheck(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)
	seedUser(t, database, 3)
	seedPrivacy(t, database, 1, models.VisibilityPrivate, true)

	_, err := svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)

	// Private profile, stranger viewer: following list is still visible
	page, err := svc.ListFollowing(ctx, 1, 3, ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)
	assert.Equal(t, int64(2), page.Items[0].User.ID)

	// Blocks still apply
	_, err = svc.BlockUser(ctx, 1, 3, BlockInput{})
	require.NoError(t, err)
	_, err = svc.ListFollowing(ctx, 1, 3, ListQuery{})
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, DenyReasonBlocked, se.Reason)
}

func TestListFollowersPaginationAndSearch(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	for id := int64(2); id <= 6; id++ {
		seedUser(t, database, id)
		_, err := svc.FollowUser(ctx, id, 1, FollowInput{})
		require.NoError(t, err)
	}

	page, err := svc.ListFollowers(ctx, 1, 1, ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Pagination.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pagination.Limit)

	// Limit above the cap clamps to MaxPageSize
	page, err = svc.ListFollowers(ctx, 1, 1, ListQuery{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Pagination.Limit)

	// Case-insensitive substring search on names/email
	page, err = svc.ListFollowers(ctx, 1, 1, ListQuery{Search: "user3"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)
	assert.Equal(t, int64(3), page.Items[0].User.ID)
}

func TestRecommendationTopUp(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	for id := int64(1); id <= 6; id++ {
		seedUser(t, database, id)
	}

	// Stored suggestion: user 1 should follow user 6
	require.NoError(t, database.Create(&models.Recommendation{
		UserID:            1,
		RecommendedUserID: 6,
		Score:             80,
		ReasonCode:        models.ReasonFollowBack,
		Metadata:          models.EmptyMetadata(),
		GeneratedAt:       time.Now().UTC(),
	}).Error)

	// Mutual candidates: 1 follows 2 and 3; both follow 4; 2 follows 5
	for _, edge := range [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {2, 5}} {
		_, err := svc.FollowUser(ctx, edge[0], edge[1], FollowInput{})
		require.NoError(t, err)
	}

	views, err := svc.ListRecommendations(ctx, 1, 5)
	require.NoError(t, err)
	// stored(1) + candidates(4, 5); the follow-back rows seeded for users
	// 2..5 belong to those users, not user 1
	require.Len(t, views, 3)

	// Stored entries precede synthesized ones
	assert.Equal(t, int64(6), views[0].RecommendedUserID)
	assert.NotZero(t, views[0].ID)
	require.NotNil(t, views[0].RecommendedUser)
	assert.Equal(t, "user6@example.com", views[0].RecommendedUser.Email)

	// Candidates ranked by distinct mutual count: 4 (two mutuals) then 5
	assert.Equal(t, int64(4), views[1].RecommendedUserID)
	assert.EqualValues(t, 2, views[1].MutualFollowersCount)
	assert.Equal(t, models.ScoreMutualFollowers, views[1].Score)
	assert.Equal(t, models.ReasonMutualFollowers, views[1].ReasonCode)
	assert.Zero(t, views[1].ID)

	assert.Equal(t, int64(5), views[2].RecommendedUserID)
	assert.EqualValues(t, 1, views[2].MutualFollowersCount)

	// Synthesized entries are never written back
	assert.EqualValues(t, 0, countRows(t, database, &models.Recommendation{}, "user_id = ? AND reason_code = ?", 1, models.ReasonMutualFollowers))

	// A tighter limit cuts the tail
	views, err = svc.ListRecommendations(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestConsumedRecommendationsExcluded(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)
	seedUser(t, database, 2)

	require.NoError(t, database.Create(&models.Recommendation{
		UserID:            1,
		RecommendedUserID: 2,
		Score:             80,
		ReasonCode:        models.ReasonFollowBack,
		Metadata:          models.EmptyMetadata(),
		GeneratedAt:       time.Now().UTC(),
	}).Error)

	// Following user 2 consumes the suggestion
	_, err := svc.FollowUser(ctx, 1, 2, FollowInput{})
	require.NoError(t, err)

	var rec models.Recommendation
	require.NoError(t, database.Where("user_id = ? AND recommended_user_id = ?", 1, 2).First(&rec).Error)
	assert.True(t, rec.ConsumedAt.Valid)
	assert.Equal(t, "followed-back", rec.ConsumedReason.String)

	views, err := svc.ListRecommendations(ctx, 1, 5)
	require.NoError(t, err)
	for _, v := range views {
		assert.NotEqual(t, int64(2), v.RecommendedUserID)
	}
}

func TestPrivacySettings(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	seedUser(t, database, 1)

	// Reading someone else's settings is forbidden
	_, err := svc.GetPrivacySettings(ctx, 1, 2)
	assert.Equal(t, 403, StatusOf(err))
	_, err = svc.UpdatePrivacySettings(ctx, 1, 2, PrivacyInput{})
	assert.Equal(t, 403, StatusOf(err))

	// Absent row reads as the defaults without persisting anything
	setting, err := svc.GetPrivacySettings(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPublic, setting.ProfileVisibility)
	assert.False(t, setting.FollowApprovalRequired)
	assert.EqualValues(t, 0, countRows(t, database, &models.PrivacySetting{}, ""))

	visibility := models.VisibilityPrivate
	approval := true
	updated, err := svc.UpdatePrivacySettings(ctx, 1, 1, PrivacyInput{
		ProfileVisibility:      &visibility,
		FollowApprovalRequired: &approval,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, updated.ProfileVisibility)
	assert.True(t, updated.FollowApprovalRequired)
	assert.EqualValues(t, 1, countRows(t, database, &models.PrivacySetting{}, ""))
	assert.EqualValues(t, 1, countRows(t, database, &models.AuditLogEntry{}, "action = ?", models.AuditPrivacyUpdated))
	assert.EqualValues(t, 1, countRows(t, database, &models.DomainEvent{}, "event_type = ?", models.EventPrivacyUpdated))

	bogus := "friends-of-friends"
	_, err = svc.UpdatePrivacySettings(ctx, 1, 1, PrivacyInput{ProfileVisibility: &bogus})
	assert.Equal(t, 400, StatusOf(err))
}
