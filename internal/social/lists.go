package social

import (
	"context"

	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/telemetry"
)

// ListFollowers returns the followers of subjectID as seen by viewerID,
// subject to the subject's privacy policy.
func (s *Service) ListFollowers(ctx context.Context, subjectID, viewerID int64, query ListQuery) (*FollowListPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.list_followers")
	defer span.End()

	st := newStores(s.db)
	if _, err := s.requireUser(ctx, st, subjectID); err != nil {
		return nil, err
	}
	if err := s.validatePrivacyAccess(ctx, st, viewerID, subjectID); err != nil {
		return nil, err
	}

	limit, offset := s.clampPage(query.Limit, query.Offset)
	status := query.Status
	if status == "" {
		status = models.FollowStatusAccepted
	}

	rels, total, err := st.follows.ListFollowers(ctx, subjectID, status, query.Search, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]FollowListItem, 0, len(rels))
	for _, rel := range rels {
		items = append(items, FollowListItem{Relationship: rel, User: rel.Follower})
	}

	viewerCtx, err := s.viewerContext(ctx, st, viewerID, subjectID)
	if err != nil {
		return nil, err
	}

	return &FollowListPage{
		Items:         items,
		Pagination:    Pagination{Total: total, Limit: limit, Offset: offset},
		ViewerContext: viewerCtx,
	}, nil
}

// ListFollowing returns who subjectID follows, as seen by viewerID. Only
// block state gates this listing; profile visibility applies to the
// follower list alone.
func (s *Service) ListFollowing(ctx context.Context, subjectID, viewerID int64, query ListQuery) (*FollowListPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "social.list_following")
	defer span.End()

	st := newStores(s.db)
	if _, err := s.requireUser(ctx, st, subjectID); err != nil {
		return nil, err
	}
	if viewerID != subjectID {
		if err := s.assertNotBlockedEither(ctx, st, viewerID, subjectID); err != nil {
			return nil, err
		}
	}

	limit, offset := s.clampPage(query.Limit, query.Offset)
	status := query.Status
	if status == "" {
		status = models.FollowStatusAccepted
	}

	rels, total, err := st.follows.ListFollowing(ctx, subjectID, status, query.Search, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]FollowListItem, 0, len(rels))
	for _, rel := range rels {
		items = append(items, FollowListItem{Relationship: rel, User: rel.Following})
	}

	viewerCtx, err := s.viewerContext(ctx, st, viewerID, subjectID)
	if err != nil {
		return nil, err
	}

	return &FollowListPage{
		Items:         items,
		Pagination:    Pagination{Total: total, Limit: limit, Offset: offset},
		ViewerContext: viewerCtx,
	}, nil
}

// clampPage bounds the pagination window to the configured limits
func (s *Service) clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// validatePrivacyAccess decides whether viewerID may see subjectID's
// follower list: the subject always may; blocks in either direction deny
// with reason "blocked"; then the subject's profile visibility applies,
// where "followers" requires an accepted follow from the viewer.
func (s *Service) validatePrivacyAccess(ctx context.Context, st *stores, viewerID, subjectID int64) error {
	if viewerID == subjectID {
		return nil
	}
	if err := s.assertNotBlockedEither(ctx, st, viewerID, subjectID); err != nil {
		return err
	}

	privacy, err := st.privacy.GetForUser(ctx, subjectID)
	if err != nil {
		return err
	}
	switch privacy.ProfileVisibility {
	case models.VisibilityPublic:
		return nil
	case models.VisibilityFollowers:
		rel, err := st.follows.FindRelationship(ctx, viewerID, subjectID)
		if err != nil {
			return err
		}
		if rel != nil && rel.Status == models.FollowStatusAccepted {
			return nil
		}
	}
	return NewForbiddenReason("this list is not visible to you", DenyReasonPrivacy)
}

// assertNotBlockedEither denies with reason "blocked" when a block exists
// in either direction between the two users.
func (s *Service) assertNotBlockedEither(ctx context.Context, st *stores, viewerID, subjectID int64) error {
	for _, pair := range [][2]int64{{viewerID, subjectID}, {subjectID, viewerID}} {
		block, err := st.blocks.FindActive(ctx, pair[0], pair[1])
		if err != nil {
			return err
		}
		if block != nil {
			return NewForbiddenReason("this list is not visible to you", DenyReasonBlocked)
		}
	}
	return nil
}

// viewerContext reports accepted follow edges between viewer and subject
func (s *Service) viewerContext(ctx context.Context, st *stores, viewerID, subjectID int64) (ViewerContext, error) {
	var vc ViewerContext
	if viewerID == subjectID {
		return vc, nil
	}

	forward, err := st.follows.FindRelationship(ctx, viewerID, subjectID)
	if err != nil {
		return vc, err
	}
	vc.ViewerFollowsSubject = forward != nil && forward.Status == models.FollowStatusAccepted

	backward, err := st.follows.FindRelationship(ctx, subjectID, viewerID)
	if err != nil {
		return vc, err
	}
	vc.SubjectFollowsViewer = backward != nil && backward.Status == models.FollowStatusAccepted
	return vc, nil
}
