package social

import (
	"time"

	"github.com/learnsphere/socialgraph/internal/models"
)

// FollowInput carries optional attributes of a follow request
type FollowInput struct {
	Source   string                 `json:"source"`
	Reason   string                 `json:"reason"`
	Metadata map[string]interface{} `json:"metadata"`
}

// BlockInput carries optional attributes of a block
type BlockInput struct {
	Reason    string                 `json:"reason"`
	Metadata  map[string]interface{} `json:"metadata"`
	ExpiresAt *time.Time             `json:"expiresAt"`
}

// MuteInput carries optional attributes of a mute. A nil DurationMinutes
// stores an indefinite mute.
type MuteInput struct {
	Reason          string                 `json:"reason"`
	Metadata        map[string]interface{} `json:"metadata"`
	DurationMinutes *int                   `json:"durationMinutes"`
}

// ListQuery is the pagination/filter surface of the list endpoints
type ListQuery struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Search string `json:"search"`
	Status string `json:"status"`
}

// PrivacyInput carries a partial privacy-settings update; nil fields keep
// their current value.
type PrivacyInput struct {
	ProfileVisibility      *string                `json:"profileVisibility"`
	FollowApprovalRequired *bool                  `json:"followApprovalRequired"`
	MessagePermission      *string                `json:"messagePermission"`
	ShareActivity          *bool                  `json:"shareActivity"`
	Metadata               map[string]interface{} `json:"metadata"`
}

// FollowListItem pairs a relationship with the user on its far end
type FollowListItem struct {
	Relationship *models.FollowRelationship `json:"relationship"`
	User         *models.User               `json:"user"`
}

// Pagination echoes the window applied plus the unpaginated total
type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ViewerContext tells the caller how the viewer relates to the subject
type ViewerContext struct {
	ViewerFollowsSubject bool `json:"viewerFollowsSubject"`
	SubjectFollowsViewer bool `json:"subjectFollowsViewer"`
}

// FollowListPage is the view model of the follower/following listings
type FollowListPage struct {
	Items         []FollowListItem `json:"items"`
	Pagination    Pagination       `json:"pagination"`
	ViewerContext ViewerContext    `json:"viewerContext"`
}

// RecommendationView is a follow suggestion. Synthesized mutual-follower
// entries carry no persisted ID.
type RecommendationView struct {
	ID                   int64        `json:"id,omitempty"`
	UserID               int64        `json:"userId"`
	RecommendedUserID    int64        `json:"recommendedUserId"`
	RecommendedUser      *models.User `json:"recommendedUser,omitempty"`
	Score                float64      `json:"score"`
	MutualFollowersCount int64        `json:"mutualFollowersCount"`
	ReasonCode           string       `json:"reasonCode"`
	GeneratedAt          time.Time    `json:"generatedAt"`
}
