package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/sentinel-security/sentinel-console/internal/api/docs"
	"github.com/sentinel-security/sentinel-console/internal/api/handler"
	"github.com/sentinel-security/sentinel-console/internal/api/middleware"
	"github.com/sentinel-security/sentinel-console/internal/evidence"
	"github.com/sentinel-security/sentinel-console/internal/notify"
	"github.com/sentinel-security/sentinel-console/internal/roster"
	"github.com/sentinel-security/sentinel-console/internal/stream"
	"github.com/sentinel-security/sentinel-console/internal/ws"
)

type Dependencies struct {
	Consumer *stream.Consumer
	Roster   *roster.Sync
	Hub      *ws.Hub
	Report   *evidence.Report
	Sound    notify.SoundPlayer
	// Ready checks store connectivity for the readiness probe; nil in demo
	// mode.
	Ready func(ctx context.Context) error
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Sentinel Console API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(r.deps.Ready)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	alertsHandler := handler.NewAlertsHandler(r.deps.Consumer, r.deps.Report, r.logger)
	v1.Get("/alerts", alertsHandler.List)
	v1.Post("/alerts/simulate", alertsHandler.Simulate)
	v1.Post("/alerts/:id/review", alertsHandler.Review)
	v1.Get("/alerts/:id/evidence", alertsHandler.Evidence)

	employeesHandler := handler.NewEmployeesHandler(r.deps.Roster)
	v1.Get("/employees", employeesHandler.List)

	// Dashboard push channel. Each connection gets its own popup session,
	// detached from the alert stream when the socket closes.
	v1.Use("/ws", ws.UpgradeMiddleware())
	v1.Get("/ws", ws.Handler(r.deps.Hub, r.newSession))
}

func (r *Router) newSession(events notify.Events) (*notify.Controller, func()) {
	controller := notify.NewController(events, r.deps.Sound, r.logger)
	session := &stream.Session{}
	detach := r.deps.Consumer.Attach(session, controller)

	return controller, func() {
		detach()
		controller.Close()
	}
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (r *Router) App() *fiber.App {
	return r.app
}
