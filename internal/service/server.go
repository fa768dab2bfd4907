package service

import (
	"rewear/internal/app"
	"rewear/internal/pkg/auth"
	"rewear/internal/pkg/logger"
	"rewear/internal/pkg/metrics"
	"rewear/internal/pkg/ratelimit"
	"rewear/internal/pkg/requestid"

	"github.com/go-chi/chi/v5"
)

// Service encapsulates the HTTP server configuration, including the application's business logic,
// HTTP handlers, the server's run address, and a logger for event and error logging.
type Service struct {
	handlers   *handlers
	app        *app.App
	metrics    *metrics.Metrics
	limiter    *ratelimit.Limiter
	runAddress string
	log        *logger.Logger
}

// NewService creates and initializes a new Service instance.
// It sets up the handlers using the provided application and logger,
// and configures the server's run address. m may be nil, in which case /metrics answers 404,
// and limiter may be nil to disable write throttling.
func NewService(app *app.App, runAddress string, l *logger.Logger, m *metrics.Metrics, limiter *ratelimit.Limiter) *Service {
	handlers := newHandlers(app, l)
	return &Service{handlers: handlers, app: app, metrics: m, limiter: limiter, runAddress: runAddress, log: l}
}

// NewRouter sets up and returns a new chi.Router instance with the necessary middleware and routes.
// Every request gets a request id and is logged; everything below /api except /api/auth requires a JWT,
// writes are throttled per user, and /api/admin additionally requires the admin flag.
func (service *Service) NewRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(requestid.Middleware())
	router.Use(service.log.WithLogging())

	router.Handle("/metrics", service.metrics.Handler())
	router.Post("/api/auth", service.handlers.authHandler)
	router.Route("/api", func(r chi.Router) {
		r.Use(auth.CheckJWTMiddleware())
		r.Use(service.limiter.Middleware())
		r.Get("/info", service.handlers.infoHandler)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", service.handlers.createItemHandler)
			r.Get("/", service.handlers.browseItemsHandler)
			r.Get("/mine", service.handlers.myItemsHandler)
			r.Get("/{id}", service.handlers.getItemHandler)
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Post("/", service.handlers.createSwapHandler)
			r.Get("/", service.handlers.listSwapsHandler)
			r.Get("/{id}", service.handlers.getSwapHandler)
			r.Put("/{id}", service.handlers.updateSwapStatusHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdminMiddleware())
			r.Get("/items", service.handlers.moderationQueueHandler)
			r.Put("/items/{id}/approve", service.handlers.approveItemHandler)
			r.Put("/items/{id}/reject", service.handlers.rejectItemHandler)
			r.Get("/dashboard", service.handlers.dashboardHandler)
		})
	})
	return router
}
