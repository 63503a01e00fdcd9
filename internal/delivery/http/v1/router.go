package v1

import (
	"net/http"
	"time"

	"matchmakr-backend/config"
	"matchmakr-backend/internal/delivery/http/middleware"
	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"
	"matchmakr-backend/internal/usecase"
	"matchmakr-backend/pkg/audit"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	SkillUC       domain.SkillUsecase
	ProfileUC     domain.ProfileUsecase
	CompanyUC     domain.CompanyUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	MatchUC       domain.MatchUsecase
	HealthUC      usecase.HealthUsecase
	Tokens        middleware.TokenVerifier
	RateLimiter   *middleware.RateLimiter
	Audit         *audit.Logger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api/v1")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authLimit := deps.RateLimiter.Middleware(middleware.AuthRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC, deps.Audit))
	{
		NewAuthHandler(api, protected, deps.AuthUC, authLimit)
		NewSkillHandler(protected, deps.SkillUC)
		NewProfileHandler(protected, deps.ProfileUC)
		NewCompanyHandler(protected, deps.CompanyUC)
		NewJobHandler(protected, deps.JobUC, deps.ApplicationUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewMatchHandler(protected, deps.MatchUC)
	}

	return r
}
