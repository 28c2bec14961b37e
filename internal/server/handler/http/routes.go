package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/heartbible/connect/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// Heartbible Connect API. It applies JSON content-type enforcement,
// request logging, and owner scoping, and mounts the session, reminder,
// catalog, and statistics endpoints under /api.
//
// Routes:
//
//	POST   /api/session                          → sessionHandler.Open
//	GET    /api/reminders                        → reminderHandler.List
//	POST   /api/reminders                        → reminderHandler.Create
//	PUT    /api/reminders/{id}                   → reminderHandler.Update
//	DELETE /api/reminders/{id}                   → reminderHandler.Delete
//	GET    /api/reminders/stats                  → reminderHandler.Stats
//	GET    /api/catalog/modules                  → catalogHandler.Modules
//	GET    /api/catalog/modules/{value}/stories  → catalogHandler.Stories
//	GET    /metrics                              → Prometheus collectors
func NewRouter(
	sessionHandler *SessionHandler,
	reminderHandler *ReminderHandler,
	catalogHandler *CatalogHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and feed the metrics collectors
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Only allow requests with a JSON body where one is expected
		r.Use(chiMiddleware.AllowContentType("application/json"))
		// Lift the dni query parameter into the request context
		r.Use(middleware.OwnerScope)

		r.Post("/session", sessionHandler.Open)

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", reminderHandler.List)
			r.Post("/", reminderHandler.Create)
			r.Get("/stats", reminderHandler.Stats)
			r.Put("/{id}", reminderHandler.Update)
			r.Delete("/{id}", reminderHandler.Delete)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/modules", catalogHandler.Modules)
			r.Get("/modules/{value}/stories", catalogHandler.Stories)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
