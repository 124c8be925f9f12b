package api

import (
	"net/http"
	"tsp-canvas-service/internal/api/handlers"
	"tsp-canvas-service/internal/services"
	"tsp-canvas-service/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(registry *services.SessionRegistry) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware, middleware.Recoverer)

	sessionHandler := &handlers.SessionHandler{Registry: registry}
	pageHandler := &handlers.PageHandler{Templates: web.Templates()}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/", pageHandler.Index)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	r.Get("/health", handlers.Health)

	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", sessionHandler.Get)
		r.Post("/cities", sessionHandler.Click)
		r.Post("/solve", sessionHandler.Solve)
		r.Post("/reset", sessionHandler.Reset)
		r.Get("/events", sessionHandler.Events)
	})

	return r
}
