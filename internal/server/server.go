package server

import (
	"sticky-notes-be/internal/bootstrap"
	"sticky-notes-be/internal/config"
	"sticky-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "sticky-notes-be",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (no-op provider unless OTEL_ENABLED)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLogger(container.Logger))
	app.Use(serverutils.BlacklistGate(container.BlacklistService))

	// Routes
	registerRoutes(app, container)

	app.Use(serverutils.NotFoundHandler)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.OAuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)
	c.NoteController.RegisterRoutes(api)
}
