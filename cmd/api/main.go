package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchmakr-backend/config"
	_ "matchmakr-backend/docs" // Important for Swagger
	"matchmakr-backend/internal/delivery/http/middleware"
	v1 "matchmakr-backend/internal/delivery/http/v1"
	"matchmakr-backend/internal/repository/postgres"
	"matchmakr-backend/internal/usecase"
	"matchmakr-backend/pkg/audit"
	"matchmakr-backend/pkg/auth"
	"matchmakr-backend/pkg/database"
	"matchmakr-backend/pkg/logger"
	"matchmakr-backend/pkg/redis"
	"matchmakr-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Matchmakr API
// @version         1.0
// @description     Job board backend: companies, postings, applications and skill matching.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		logger.Log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so main exits only after they have run
func run() error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gin.SetMode(cfg.GinMode)
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting matchmakr backend", "port", cfg.Port)

	environment := "development"
	if cfg.IsProduction() {
		environment = "production"
	}
	auditLogger := audit.New("matchmakr-backend", environment)
	defer auditLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(ctx, dbPool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	// 4. Setup Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Setup Repositories
	tx := database.NewTransactor(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	matchRepo := postgres.NewMatchRepository(dbPool)

	// 6. Setup UseCases
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, "matchmakr-backend")
	jobCache := usecase.NewJobCache(redisClient, cfg.JobCacheTTL)

	authUC := usecase.NewAuthUsecase(tx, userRepo, profileRepo, tokens, auditLogger)
	skillUC := usecase.NewSkillUsecase(tx, skillRepo, jobCache)
	profileUC := usecase.NewProfileUsecase(tx, profileRepo, skillRepo, auditLogger)
	companyUC := usecase.NewCompanyUsecase(tx, companyRepo, jobCache, auditLogger)
	jobUC := usecase.NewJobUsecase(tx, jobRepo, companyRepo, skillRepo, jobCache, auditLogger)
	applicationUC := usecase.NewApplicationUsecase(tx, applicationRepo, jobRepo, auditLogger, cfg.StrictStatusTransitions)
	matchUC := usecase.NewMatchUsecase(tx, matchRepo, jobRepo, profileRepo, auditLogger)
	healthUC := usecase.NewHealthUsecase(dbPool, redisClient)

	// 7. Setup Router
	validation.RegisterGinValidators()
	limiter := middleware.NewRateLimiter(redisClient, auditLogger)
	limiter.StartCleanup(ctx, 5*time.Minute)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		SkillUC:       skillUC,
		ProfileUC:     profileUC,
		CompanyUC:     companyUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		MatchUC:       matchUC,
		HealthUC:      healthUC,
		Tokens:        tokens,
		RateLimiter:   limiter,
		Audit:         auditLogger,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	default:
	}
	logger.Log.Info("Server exiting")
	return nil
}
