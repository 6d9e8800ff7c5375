package api

import (
	"net/http"

	"filedesk-backend/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes configures and returns the chi router.
func (h *Handler) Routes(corsOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(Metrics)

	// The demo frontend runs on a different origin during development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.handleHealth)
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(BearerToken)

		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)
		r.Get("/auth/whoami", h.handleWhoami)
		r.Post("/auth/logout", h.handleLogout)

		r.Get("/i18n/{lang}", h.handleI18n)
		r.Get("/prefs", h.handleGetPrefs)
		r.Put("/prefs", h.handleSetPrefs)

		r.Get("/files", h.handleListFiles)
		r.Post("/files", h.handleCreateFile)
		r.Get("/files/{id}", h.handleGetFile)
		r.Put("/files/{id}/content", h.handleSaveFile)
		r.Post("/files/{id}/rename", h.handleRenameFile)
		r.Post("/files/{id}/move", h.handleMoveFile)
		r.Delete("/files/{id}", h.handleDeleteFile)
	})

	return r
}
