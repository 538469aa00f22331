package social

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/learnsphere/socialgraph/internal/cache"
	"github.com/learnsphere/socialgraph/internal/db"
	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/config"
	"github.com/learnsphere/socialgraph/pkg/logging"
)

// Service is the social graph core: follow lifecycle, blocking, muting,
// privacy-gated reads and follow recommendations. Each public method runs
// its writes in one database transaction; recommendation fan-out inside
// that transaction is best-effort and never fails the primary operation.
type Service struct {
	db     *gorm.DB
	cache  *cache.Cache
	cfg    config.SocialConfig
	logger *zap.Logger
}

// NewService creates a social graph service. redisCache may be nil.
func NewService(database *gorm.DB, redisCache *cache.Cache, cfg config.SocialConfig) *Service {
	return &Service{
		db:     database,
		cache:  redisCache,
		cfg:    cfg,
		logger: logging.WithComponent("social-graph"),
	}
}

// stores bundles the repositories bound to one connection or transaction
type stores struct {
	users   *db.UserRepository
	follows *db.FollowRepository
	blocks  *db.BlockRepository
	mutes   *db.MuteRepository
	privacy *db.PrivacyRepository
	recs    *db.RecommendationRepository
	audit   *db.AuditRepository
	events  *db.EventRepository
}

func newStores(conn *gorm.DB) *stores {
	repo := db.NewRepository(conn)
	return &stores{
		users:   db.NewUserRepository(repo),
		follows: db.NewFollowRepository(repo),
		blocks:  db.NewBlockRepository(repo),
		mutes:   db.NewMuteRepository(repo),
		privacy: db.NewPrivacyRepository(repo),
		recs:    db.NewRecommendationRepository(repo),
		audit:   db.NewAuditRepository(repo),
		events:  db.NewEventRepository(repo),
	}
}

// runBestEffort executes a secondary write, logging failures instead of
// propagating them. The write still shares the caller's transaction, so
// it rolls back with the primary operation if that one fails.
func (s *Service) runBestEffort(op string, fn func() error, fields ...zap.Field) {
	if err := fn(); err != nil {
		s.logger.Warn("best-effort side effect failed",
			append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...)
	}
}

// requireUser resolves a user or fails with NotFound
func (s *Service) requireUser(ctx context.Context, st *stores, userID int64) (*models.User, error) {
	user, err := st.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewNotFound("user not found")
	}
	return user, nil
}

// assertNotBlocked rejects an interaction when either party blocks the
// other. An actor-side block is a conflict the actor can resolve; a
// target-side block is opaque to the actor.
func (s *Service) assertNotBlocked(ctx context.Context, st *stores, actorID, targetID int64) error {
	actorBlock, err := st.blocks.FindActive(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if actorBlock != nil {
		return NewConflict("you must unblock this user first")
	}
	targetBlock, err := st.blocks.FindActive(ctx, targetID, actorID)
	if err != nil {
		return err
	}
	if targetBlock != nil {
		return NewForbidden("you are blocked by this user")
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, st *stores, actorID int64, targetID *int64, action, source string, metadata map[string]interface{}) error {
	entry := &models.AuditLogEntry{
		UserID:    actorID,
		Action:    action,
		Metadata:  models.MetadataFromMap(metadata),
		CreatedAt: time.Now().UTC(),
	}
	if targetID != nil {
		entry.TargetUserID.Int64 = *targetID
		entry.TargetUserID.Valid = true
	}
	if source != "" {
		entry.Source.String = source
		entry.Source.Valid = true
	}
	return st.audit.Record(ctx, entry)
}

func (s *Service) recordEvent(ctx context.Context, st *stores, entityID, performedBy int64, eventType string, payload interface{}) error {
	return st.events.Record(ctx, &models.DomainEvent{
		EntityType:  models.EntityTypeUser,
		EntityID:    entityID,
		EventType:   eventType,
		Payload:     marshalPayload(payload),
		PerformedBy: performedBy,
		CreatedAt:   time.Now().UTC(),
	})
}

func marshalPayload(payload interface{}) datatypes.JSON {
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.EmptyMetadata()
	}
	return datatypes.JSON(raw)
}
