package api

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/api/handler"
	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
	"github.com/imagehub/imagehub-web/internal/infrastructure/content"
	"github.com/imagehub/imagehub-web/internal/pkg/config"
)

// uploadBodyLimit leaves room above the 10MB image ceiling so oversized files
// reach the upload check instead of being cut off.
const uploadBodyLimit = "32M"

// Deps are the wired services the router serves.
type Deps struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Sessions  ports.SessionManager
	Auth      ports.AuthService
	Images    ports.ImageService
	Admin     ports.AdminService
	Profiles  handler.ProfileReader
	Sequencer *service.Sequencer
	Landing   *content.Landing
	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Pinger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// process-wide default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(middleware.ContextKeyRequestID, id)
		},
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "imagehub_web",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/static/*"
		},
	}))

	// --- Probes, metrics and assets (no session) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.StaticFS("/static", web.Static())

	// --- Dependencies ---
	cfg := d.Config
	screen := handler.NewScreen(d.Sessions, cfg.Session.CookieSecure, d.Logger)
	dashboardHandler := handler.NewDashboardHandler(screen, d.Images, d.Profiles, d.Sequencer)
	adminHandler := handler.NewAdminHandler(screen, d.Admin, d.Sequencer)
	authHandler := handler.NewAuthHandler(screen, d.Auth, cfg.UI.SignupRedirectDelay)
	navHandler := handler.NewNavigationHandler(screen, d.Landing, dashboardHandler, adminHandler)

	app := e.Group("",
		middleware.Session(d.Sessions, middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		}),
		middleware.CSRF([]byte(cfg.Session.CSRFKey), cfg.Session.CookieSecure),
	)

	// --- Navigation and auth routes ---
	throttle := middleware.FormRateLimiter(cfg.UI.LoginRateLimit)
	app.GET("/", navHandler.Index)
	app.GET("/go/:page", navHandler.Go)
	app.POST("/login", authHandler.Login, throttle)
	app.POST("/signup", authHandler.Signup, throttle)
	app.POST("/logout", authHandler.Logout)

	// --- End-user dashboard ---
	images := app.Group("/images", middleware.RequireRole(domain.RoleUser, navHandler.ToLogin))
	images.POST("", dashboardHandler.Upload, echomiddleware.BodyLimit(uploadBodyLimit))
	images.POST("/:id/transform", dashboardHandler.Transform)
	images.GET("/:id/download", dashboardHandler.Download)
	images.POST("/:id/delete", dashboardHandler.Delete)

	// --- Admin dashboard ---
	admin := app.Group("/admin/users", middleware.RequireRole(domain.RoleAdmin, navHandler.ToLogin))
	admin.POST("", adminHandler.Create)
	admin.POST("/:id", adminHandler.Update)
	admin.POST("/:id/delete", adminHandler.Delete)
	admin.POST("/:id/activate", adminHandler.Activate)
	admin.POST("/:id/deactivate", adminHandler.Deactivate)

	return e, nil
}
