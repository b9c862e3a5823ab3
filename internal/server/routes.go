package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routes builds the router. Fixed report paths are registered before {id}.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(recoveryMiddleware(s.logger))
	r.Use(correlationIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(corsMiddleware(s.app.Config.CORS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// System
	r.Get("/", s.handleRoot)
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/version", s.handleVersion)
	r.Post("/api/shutdown", s.handleShutdown)

	// Auth
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(s.requireAuth).Get("/profile", s.handleProfile)
	})

	// Reports
	r.Route("/api/reports", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/download/{id}/{format}", s.handleReportDownload)
		r.Post("/generate", s.handleReportGenerate)
		r.Get("/history", s.handleReportHistory)
		r.Get("/chart", s.handleReportChart)
		r.Get("/{id}", s.handleReportGet)
		r.Get("/{id}/view", s.handleReportView)
		r.Patch("/{id}", s.handleReportUpdate)
	})

	// Chat
	r.Route("/api/chat", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/message", s.handleChatMessage)
		r.Get("/history", s.handleChatHistory)
		r.Get("/{id}/messages", s.handleChatMessages)
	})

	return r
}
