// Package router assembles the gin engine and the route table.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/group-study-api/internal/handler"
	internalmiddleware "github.com/noah-isme/group-study-api/internal/middleware"
	"github.com/noah-isme/group-study-api/internal/service"
	"github.com/noah-isme/group-study-api/pkg/config"
	"github.com/noah-isme/group-study-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/group-study-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/group-study-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Assignments *handler.AssignmentHandler
	Submissions *handler.SubmissionHandler
	References  *handler.ReferenceHandler
	Auth        *handler.AuthHandler
	Health      *handler.HealthHandler
}

// New builds the engine with the shared middleware chain. The token verifier
// guards the identity scoped submission listings.
func New(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, verifier internalmiddleware.TokenVerifier, h Handlers) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(metrics))
	}

	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Health.Prometheus)
	}
	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	gate := internalmiddleware.CookieAuth(verifier, cfg.Cookie.Name)
	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/jwt", h.Auth.Issue)
	auth.POST("/logout", h.Auth.Logout)

	user := api.Group("/user")
	user.GET("/assignments", h.Assignments.List)
	user.GET("/assignmentsCount", h.Assignments.Count)
	user.GET("/assignments/:id", h.Assignments.Get)
	user.POST("/assignments", h.Assignments.Create)
	user.PUT("/assignments/:id", h.Assignments.Upsert)
	user.DELETE("/assignments/:id", h.Assignments.Delete)

	user.GET("/submitted_assignments", gate, h.Submissions.ListByStatus)
	user.GET("/submitted_assignments/:id", h.Submissions.Get)
	user.GET("/user_submitted_assignments/:email", gate, h.Submissions.ListBySubmitter)
	user.POST("/submitted_assignments", h.Submissions.Create)
	user.PUT("/submitted_assignments/:id", h.Submissions.Grade)

	user.GET("/featured", h.References.Featured)
	user.GET("/FAQs", h.References.FAQs)

	return r
}
