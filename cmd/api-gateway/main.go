package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/group-study-api/api/swagger"
	"github.com/noah-isme/group-study-api/internal/handler"
	"github.com/noah-isme/group-study-api/internal/repository"
	"github.com/noah-isme/group-study-api/internal/router"
	"github.com/noah-isme/group-study-api/internal/service"
	"github.com/noah-isme/group-study-api/pkg/cache"
	"github.com/noah-isme/group-study-api/pkg/config"
	"github.com/noah-isme/group-study-api/pkg/database"
	"github.com/noah-isme/group-study-api/pkg/logger"
)

// @title Group Study API
// @version 1.0.0
// @description Assignments, submissions and grading for the group study app
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	mongoClient, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logr.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.Mongo.Name)

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, token revocation disabled", zap.Error(err))
	}
	revocations := repository.NewRevocationRepository(redisClient)
	defer revocations.Close() //nolint:errcheck

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()

	assignmentRepo := repository.NewAssignmentRepository(db, metrics)
	submissionRepo := repository.NewSubmissionRepository(db, metrics)
	referenceRepo := repository.NewReferenceRepository(db, metrics)

	tokens := service.NewTokenService(revocations, validate, logr, service.TokenConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: "group-study-api",
	})
	assignments := service.NewAssignmentService(assignmentRepo, validate, logr)
	submissions := service.NewSubmissionService(submissionRepo, validate, logr)
	references := service.NewReferenceService(referenceRepo, logr)

	r := router.New(cfg, logr, metrics, tokens, router.Handlers{
		Assignments: handler.NewAssignmentHandler(assignments),
		Submissions: handler.NewSubmissionHandler(submissions),
		References:  handler.NewReferenceHandler(references),
		Auth:        handler.NewAuthHandler(tokens, cfg.Cookie, logr),
		Health: handler.NewHealthHandler(metrics, func(ctx context.Context) error {
			return database.Ping(ctx, mongoClient)
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env),
			zap.Bool("revocation", redisClient != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
}
