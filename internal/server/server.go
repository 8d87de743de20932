// Package server exposes the portfolio services as a JSON HTTP API.
package server

import (
	"context"
	"net"
	"time"

	"portfolio/internal/bootstrap"
	"portfolio/internal/middleware"
	"portfolio/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	rt             *bootstrap.Runtime
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer creates the fiber app with middleware and routes over rt.
func NewServer(rt *bootstrap.Runtime) *Server {
	s := &Server{
		rt:             rt,
		promMiddleware: middleware.InitMetrics("portfolio-api"),
	}

	app := fiber.New(fiber.Config{
		AppName:      "portfolio",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		// room for the largest photo plus its JSON envelope
		BodyLimit:    service.MaxPhotoBytes + 64*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return respondError(c, err)
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	profile := api.Group("/profile")
	profile.Get("/username", s.GetUsername)
	profile.Put("/username", s.ChangeUsername)
	profile.Get("/photo", s.GetPhoto)
	profile.Put("/photo", s.SetPhoto)

	catalog := api.Group("/catalog")
	catalog.Get("/", s.GetCatalog)
	catalog.Post("/refresh", s.RefreshCatalog)

	// Specific routes before generic /:id
	projects := api.Group("/projects")
	projects.Get("/", s.QueryProjects)
	projects.Get("/languages", s.GetLanguages)
	projects.Delete("/:id", s.RemoveProject)

	selection := api.Group("/selection")
	selection.Get("/", s.GetSelection)
	selection.Post("/begin", s.BeginSelection)
	selection.Post("/select-all", s.SelectAll)
	selection.Post("/clear", s.ClearSelection)
	selection.Post("/commit", s.CommitSelection)
	selection.Post("/cancel", s.CancelSelection)
	selection.Get("/:id", s.GetSelectionMember)
	selection.Put("/:id", s.ToggleSelection)

	comments := api.Group("/items/:itemId/comments")
	comments.Get("/", s.GetComments)
	comments.Post("/", s.CreateComment)
	comments.Get("/count", s.GetCommentCount)
	comments.Post("/:commentId/like", s.LikeComment)
}

// HealthCheck reports liveness and probes the store.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	status := fiber.StatusOK
	if _, err := s.rt.Profile.Username(ctx); err != nil {
		storeStatus = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "up",
		"store":  fiber.Map{"backend": s.rt.Store.Name(), "status": storeStatus},
		"time":   time.Now(),
	})
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Serve accepts requests on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
