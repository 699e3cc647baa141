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

	_ "github.com/noah-isme/eduvillage-api/api/swagger"
	"github.com/noah-isme/eduvillage-api/internal/handler"
	"github.com/noah-isme/eduvillage-api/internal/repository"
	"github.com/noah-isme/eduvillage-api/internal/router"
	"github.com/noah-isme/eduvillage-api/internal/service"
	"github.com/noah-isme/eduvillage-api/pkg/cache"
	"github.com/noah-isme/eduvillage-api/pkg/config"
	"github.com/noah-isme/eduvillage-api/pkg/database"
	"github.com/noah-isme/eduvillage-api/pkg/events"
	"github.com/noah-isme/eduvillage-api/pkg/logger"
	"github.com/noah-isme/eduvillage-api/pkg/password"
)

// @title EduVillage API
// @version 1.0.0
// @description Registration, courses, enrollment, assignments, notes and leaderboards for EduVillage.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logr.Info("database migrated", zap.String("driver", cfg.Database.Driver))
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// The cache is an optimisation, so a dead Redis only disables it.
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	broker, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix, logr)
	if err != nil {
		logr.Warn("nats unavailable, events disabled", zap.Error(err))
		broker = events.NopPublisher{}
	}
	publisher := events.NewAsyncPublisher(broker, events.AsyncConfig{
		Workers:    cfg.Events.Workers,
		BufferSize: cfg.Events.BufferSize,
		MaxRetries: cfg.Events.MaxRetries,
	}, logr)
	defer publisher.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, "eduvillage", logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.CoursesTTL, logr, redisClient != nil)
	validate := validator.New()

	students := repository.NewStudentRepository(db)
	teachers := repository.NewTeacherRepository(db)
	courses := repository.NewCourseRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	notes := repository.NewNoteRepository(db)
	results := repository.NewResultRepository(db)

	authSvc := service.NewAuthService(students, teachers, password.NewHasher(cfg.Auth.PasswordCost), validate, publisher, metrics, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courses, enrollments, students, teachers, cacheSvc, cfg.Cache.CoursesTTL, validate, publisher, logr)
	assignmentSvc := service.NewAssignmentService(assignments, courses, validate, publisher, logr)
	noteSvc := service.NewNoteService(notes, courses, validate, publisher, logr)
	leaderboardSvc := service.NewLeaderboardService(results, cacheSvc, cfg.Cache.LeaderboardTTL, logr)

	engine := router.New(router.Options{
		Env:          cfg.Env,
		StaticDir:    cfg.StaticDir,
		AuthRequired: cfg.Auth.Required,
		CORSOrigins:  cfg.CORS.AllowedOrigins,
		Logger:       logr,
		Metrics:      metrics,
		Tokens:       authSvc,
	}, router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Course:      handler.NewCourseHandler(courseSvc),
		Content:     handler.NewContentHandler(assignmentSvc, noteSvc),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc),
		Metrics:     handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "auth_required", cfg.Auth.Required)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
