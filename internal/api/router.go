package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/team9/crm-auth/internal/api/handler"
	"github.com/team9/crm-auth/internal/api/middleware"
	"github.com/team9/crm-auth/internal/core/service"
	"github.com/team9/crm-auth/internal/core/token"
	mongodb "github.com/team9/crm-auth/internal/infrastructure/db/mongo"
	"github.com/team9/crm-auth/pkg/hasher"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *token.Codec, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crmauth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, hasher.NewBcrypt(0), codec)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(codec)

	// --- Auth routes ---
	e.POST("/register/", authHandler.Register)
	e.POST("/login/", authHandler.Login)
	e.POST("/token/refresh/", authHandler.Refresh)
	e.GET("/profile/", authHandler.Profile, authMiddleware)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
