package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/calendarapp/calendar-backend/internal/api/handler"
	"github.com/calendarapp/calendar-backend/internal/api/middleware"
	"github.com/calendarapp/calendar-backend/internal/core/service"
	mongodb "github.com/calendarapp/calendar-backend/internal/infrastructure/db/mongo"
	rediscache "github.com/calendarapp/calendar-backend/internal/infrastructure/db/redis"
)

// Options carries everything the router needs to assemble the service graph.
type Options struct {
	Mongo     *mongo.Database
	Redis     *redis.Client // nil disables the list cache and its readiness check
	JWTSecret string
	TokenTTL  time.Duration
	CacheTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	// --- Dependencies ---
	apptRepo := mongodb.NewAppointmentRepository(opts.Mongo)
	userRepo := mongodb.NewUserRepository(opts.Mongo, apptRepo)

	var cache service.ListCache
	if opts.Redis != nil {
		cache = rediscache.NewAppointmentCache(opts.Redis, opts.CacheTTL)
	}

	conflicts := service.NewConflictChecker(apptRepo)
	apptService := service.NewAppointmentService(apptRepo, conflicts, cache, opts.Logger)
	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL, opts.Logger)

	apptHandler := handler.NewAppointmentHandler(apptService)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.DELETE("/api/auth/account", authHandler.DeleteAccount, authMiddleware)

	// --- Appointment routes (owner-scoped, token required) ---
	appts := e.Group("/api/appointments", authMiddleware)
	appts.GET("", apptHandler.List)
	appts.POST("", apptHandler.Create)
	appts.PUT("/:id", apptHandler.Update)
	appts.DELETE("/:id", apptHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
