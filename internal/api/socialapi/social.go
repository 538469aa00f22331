package socialapi

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnsphere/socialgraph/internal/social"
	"github.com/learnsphere/socialgraph/pkg/logging"
)

// SocialAPI exposes the social graph service as JSON-RPC methods. The
// gateway in front of this service authenticates callers and injects
// actorId; here it is trusted input.
type SocialAPI struct {
	service *social.Service
	logger  *zap.Logger
}

// NewSocialAPI creates a new social API
func NewSocialAPI(service *social.Service) *SocialAPI {
	return &SocialAPI{
		service: service,
		logger:  logging.WithComponent("social-api"),
	}
}

type followParams struct {
	ActorID      int64              `json:"actorId"`
	TargetUserID int64              `json:"targetUserId"`
	Payload      social.FollowInput `json:"payload"`
}

// FollowUser handles social_api.follow_user
func (a *SocialAPI) FollowUser(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p followParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.FollowUser(c.Request.Context(), p.ActorID, p.TargetUserID, p.Payload)
}

// UnfollowUser handles social_api.unfollow_user
func (a *SocialAPI) UnfollowUser(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p followParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	removed, err := a.service.UnfollowUser(c.Request.Context(), p.ActorID, p.TargetUserID)
	if err != nil {
		return nil, err
	}
	return gin.H{"removed": removed}, nil
}

type approvalParams struct {
	ActorID      int64 `json:"actorId"`
	TargetUserID int64 `json:"targetUserId"`
	FollowerID   int64 `json:"followerId"`
}

// ApproveFollow handles social_api.approve_follow
func (a *SocialAPI) ApproveFollow(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p approvalParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.ApproveFollow(c.Request.Context(), p.TargetUserID, p.FollowerID, p.ActorID)
}

// DeclineFollow handles social_api.decline_follow
func (a *SocialAPI) DeclineFollow(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p approvalParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.DeclineFollow(c.Request.Context(), p.TargetUserID, p.FollowerID, p.ActorID)
}

type blockParams struct {
	ActorID      int64             `json:"actorId"`
	TargetUserID int64             `json:"targetUserId"`
	Payload      social.BlockInput `json:"payload"`
}

// BlockUser handles social_api.block_user
func (a *SocialAPI) BlockUser(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p blockParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.BlockUser(c.Request.Context(), p.ActorID, p.TargetUserID, p.Payload)
}

// UnblockUser handles social_api.unblock_user
func (a *SocialAPI) UnblockUser(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p blockParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	if err := a.service.UnblockUser(c.Request.Context(), p.ActorID, p.TargetUserID); err != nil {
		return nil, err
	}
	return gin.H{"unblocked": true}, nil
}

type muteParams struct {
	ActorID      int64            `json:"actorId"`
	TargetUserID int64            `json:"targetUserId"`
	Payload      social.MuteInput `json:"payload"`
}

// MuteUser handles social_api.mute_user
func (a *SocialAPI) MuteUser(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p muteParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.MuteUser(c.Request.Context(), p.ActorID, p.TargetUserID, p.Payload)
}

// UnmuteUser handles social_api.unmute_user
func (a *SocialAPI) UnmuteUser(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p muteParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	if err := a.service.UnmuteUser(c.Request.Context(), p.ActorID, p.TargetUserID); err != nil {
		return nil, err
	}
	return gin.H{"unmuted": true}, nil
}

type listParams struct {
	SubjectID int64            `json:"subjectId"`
	ViewerID  int64            `json:"viewerId"`
	Query     social.ListQuery `json:"query"`
}

// ListFollowers handles social_api.list_followers
func (a *SocialAPI) ListFollowers(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p listParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.ListFollowers(c.Request.Context(), p.SubjectID, p.ViewerID, p.Query)
}

// ListFollowing handles social_api.list_following
func (a *SocialAPI) ListFollowing(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p listParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.ListFollowing(c.Request.Context(), p.SubjectID, p.ViewerID, p.Query)
}

type recommendationParams struct {
	UserID int64 `json:"userId"`
	Limit  int   `json:"limit"`
}

// ListRecommendations handles social_api.list_recommendations
func (a *SocialAPI) ListRecommendations(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p recommendationParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.ListRecommendations(c.Request.Context(), p.UserID, p.Limit)
}

type privacyParams struct {
	UserID  int64               `json:"userId"`
	ActorID int64               `json:"actorId"`
	Payload social.PrivacyInput `json:"payload"`
}

// GetPrivacySettings handles social_api.get_privacy_settings
func (a *SocialAPI) GetPrivacySettings(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p privacyParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.GetPrivacySettings(c.Request.Context(), p.UserID, p.ActorID)
}

// UpdatePrivacySettings handles social_api.update_privacy_settings
func (a *SocialAPI) UpdatePrivacySettings(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p privacyParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	return a.service.UpdatePrivacySettings(c.Request.Context(), p.UserID, p.ActorID, p.Payload)
}
