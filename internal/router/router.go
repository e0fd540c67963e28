// Package router assembles the public HTTP surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/vaughan-dsouza/volunteer-auth/internal/handlers"
	"github.com/vaughan-dsouza/volunteer-auth/internal/middleware"
)

func New(h *handlers.Handler, logger *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.Recover(logger))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.HandleFunc("/healthz", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	return r
}
