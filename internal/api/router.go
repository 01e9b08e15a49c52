package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zonaazul/enforcement-system/internal/api/handler"
	"github.com/zonaazul/enforcement-system/internal/api/middleware"
	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// Deps carries everything the router needs to register all routes.
type Deps struct {
	Auth        ports.AuthService
	Enforcement ports.EnforcementService
	Streets     ports.StreetService
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	JWTSecret   string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("enforcement"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	enforcementHandler := handler.NewEnforcementHandler(d.Enforcement)
	streetHandler := handler.NewStreetHandler(d.Streets)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Inspection routes (legacy contract: inspector CPF in the body) ---
	e.POST("/fiscal_spot", enforcementHandler.FiscalSpots)
	e.POST("/check_parking_state", enforcementHandler.CheckParkingState)

	// --- Street administration (JWT, admin only) ---
	streets := e.Group("/streets", middleware.Auth(d.JWTSecret), middleware.RBAC(domain.RoleAdmin))
	streets.POST("", streetHandler.Create)
	streets.GET("", streetHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Pool, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
