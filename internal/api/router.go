package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobhive/jobboard-api/internal/api/handler"
	"github.com/jobhive/jobboard-api/internal/api/middleware"
	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/service"
	mongodb "github.com/jobhive/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobhive/jobboard-api/internal/infrastructure/db/redis"
	"github.com/jobhive/jobboard-api/internal/infrastructure/geocoder"
	"github.com/jobhive/jobboard-api/internal/infrastructure/http/handlers"
	"github.com/jobhive/jobboard-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	geocache := redisdb.NewGeoCache(rdb)
	geo := geocoder.New(geocoder.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
	}, geocache, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	jobService := service.NewJobService(jobRepo, geo, cfg.PostingTTL, log)
	searchService := service.NewSearchService(jobRepo, geo, log)
	statsService := service.NewStatsService(jobRepo, log)
	applicationService := service.NewApplicationService(jobRepo, cfg.Upload.Dir, service.AttachmentPolicy{
		MaxBytes:   cfg.Upload.MaxBytes,
		Extensions: cfg.Upload.Extensions,
	}, log)

	authHandler := handler.NewAuthHandler(authService, authService.TokenTTL())
	jobHandler := handler.NewJobHandler(jobService, searchService, statsService, applicationService)

	authRequired := middleware.Auth(authService)
	postJobs := middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin)
	applyJobs := middleware.RBAC(domain.RoleUser)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/logout", authHandler.Logout)
	v1.GET("/auth/me", authHandler.Me, authRequired)
	v1.PUT("/auth/password", authHandler.ChangePassword, authRequired)

	// --- Job routes ---
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/job/:id/:slug", jobHandler.Get)
	v1.POST("/job/new", jobHandler.Create, authRequired, postJobs)
	v1.PUT("/job/:id", jobHandler.Update, authRequired, postJobs)
	v1.DELETE("/job/:id", jobHandler.Delete, authRequired, postJobs)
	v1.GET("/jobs/:zipcode/:distance", jobHandler.FindNear)
	v1.GET("/stats/:topic", jobHandler.TopicStats)
	v1.PUT("/job/:id/apply", jobHandler.Apply, authRequired, applyJobs)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
