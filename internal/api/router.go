package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/HapppyEnd/api-server/docs"
	"github.com/HapppyEnd/api-server/internal/api/handler"
	"github.com/HapppyEnd/api-server/internal/api/middleware"
	"github.com/HapppyEnd/api-server/internal/core/domain"
	"github.com/HapppyEnd/api-server/internal/core/ports"
)

// Dependencies carries everything the router needs. Services are built by
// the caller so tests can assemble the same router over in-memory stores.
type Dependencies struct {
	Auth     ports.AuthService
	Logins   handler.LastLoginReader
	Patients ports.PatientService
	Guard    middleware.Authorizer
	Checks   []handler.DependencyCheck
	Logger   zerolog.Logger

	// Registry receives the HTTP request metrics. A fresh registry per
	// router keeps repeated construction in tests from colliding.
	Registry *prometheus.Registry

	ForbiddenAs403 bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, ErrorOptions{ForbiddenAs403: deps.ForbiddenAs403})

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "api",
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Logins, deps.Logger)
	patientHandler := handler.NewPatientHandler(deps.Patients)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks...)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/me", authHandler.Me, middleware.Auth(deps.Guard, deps.Logger))

	// --- Doctor-only routes ---
	doctorOnly := middleware.RequireRole(deps.Guard, domain.RoleDoctor, deps.Logger)
	e.POST("/users", authHandler.CreateUser, doctorOnly)
	e.GET("/patients", patientHandler.List, doctorOnly)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
