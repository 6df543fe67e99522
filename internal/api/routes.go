package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var defaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// SetupRoutes configures all routes for the API
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.health.HandleHealth)
	r.Get("/health/ready", h.health.HandleReadiness)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/settings", http.StatusFound)
	})
	r.Get("/settings", h.SettingsPage)
	r.Post("/settings", h.SaveSettingsForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings/excluded-domains", h.GetExcludedDomains)
		r.Put("/settings/excluded-domains", h.PutExcludedDomains)
		r.Post("/filter/preview", h.PreviewFilter)
		r.Get("/notifications/events", h.ListEvents)
		r.Post("/notifications/{event}", h.DispatchNotification)
		r.Get("/notices", h.ListNotices)
	})

	return r
}
