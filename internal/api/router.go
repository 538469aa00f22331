package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnsphere/socialgraph/internal/api/socialapi"
	"github.com/learnsphere/socialgraph/internal/cache"
	"github.com/learnsphere/socialgraph/internal/db"
	"github.com/learnsphere/socialgraph/internal/social"
	"github.com/learnsphere/socialgraph/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler *JSONRPCHandler
	db      *db.DB
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, service *social.Service) *Router {
	router := &Router{
		handler: NewJSONRPCHandler(),
		db:      database,
		cache:   redisCache,
		logger:  logging.WithComponent("api-router"),
	}
	router.registerMethods(service)
	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

// registerMethods registers all API methods
func (r *Router) registerMethods(service *social.Service) {
	socialAPI := socialapi.NewSocialAPI(service)

	r.handler.RegisterMethod("social_api.follow_user", socialAPI.FollowUser)
	r.handler.RegisterMethod("social_api.unfollow_user", socialAPI.UnfollowUser)
	r.handler.RegisterMethod("social_api.approve_follow", socialAPI.ApproveFollow)
	r.handler.RegisterMethod("social_api.decline_follow", socialAPI.DeclineFollow)
	r.handler.RegisterMethod("social_api.block_user", socialAPI.BlockUser)
	r.handler.RegisterMethod("social_api.unblock_user", socialAPI.UnblockUser)
	r.handler.RegisterMethod("social_api.mute_user", socialAPI.MuteUser)
	r.handler.RegisterMethod("social_api.unmute_user", socialAPI.UnmuteUser)
	r.handler.RegisterMethod("social_api.list_followers", socialAPI.ListFollowers)
	r.handler.RegisterMethod("social_api.list_following", socialAPI.ListFollowing)
	r.handler.RegisterMethod("social_api.list_recommendations", socialAPI.ListRecommendations)
	r.handler.RegisterMethod("social_api.get_privacy_settings", socialAPI.GetPrivacySettings)
	r.handler.RegisterMethod("social_api.update_privacy_settings", socialAPI.UpdatePrivacySettings)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "OK"
	if err := r.db.Health(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = err.Error()
	}

	cacheStatus := "disabled"
	if err := r.cache.Health(c.Request.Context()); err == nil {
		cacheStatus = "OK"
	} else if err != cache.ErrCacheDisabled {
		cacheStatus = err.Error()
	}

	c.JSON(status, gin.H{
		"status":  dbStatus,
		"cache":   cacheStatus,
		"service": "socialgraph-api",
	})
}
