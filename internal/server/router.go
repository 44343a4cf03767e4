// Package server assembles the HTTP surface: middleware, public and protected
// routes, and optional hosting of the built frontend.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ayush/employee-admin/internal/auth"
	"github.com/ayush/employee-admin/internal/employees"
	"github.com/ayush/employee-admin/internal/httpx"
	"github.com/ayush/employee-admin/internal/images"
	"github.com/ayush/employee-admin/internal/logging"
	"github.com/ayush/employee-admin/internal/middleware"
)

// Options carries everything the router wires together.
type Options struct {
	Logger         zerolog.Logger
	Gate           *auth.Gate
	Cookies        *auth.CookieHelper
	Employees      *employees.Service
	Images         *images.Service
	LoginPath      string
	AllowedOrigins []string
	MaxUploadBytes int64
	StaticDir      string
}

func NewRouter(o Options) http.Handler {
	authHandler := auth.NewHandler(o.Gate, o.Cookies)
	employeeHandler := employees.NewHandler(o.Employees, o.MaxUploadBytes)
	imageHandler := images.NewHandler(o.Images)
	requireAuth := middleware.RequireAuth(o.Gate, o.Cookies, o.LoginPath)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(logging.Middleware(o.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		r.Get("/users", employeeHandler.List)
		r.Post("/user", employeeHandler.Create)
		r.Get("/user/{id}", employeeHandler.Get)
		r.Patch("/user/{id}", employeeHandler.Update)
		r.Delete("/user/{id}", employeeHandler.Delete)

		r.Get("/images/{filename}", imageHandler.Serve)
	})

	if o.StaticDir != "" {
		spa := spaHandler(o.StaticDir)
		r.NotFound(spa)
		r.MethodNotAllowed(spa)
	}
	return r
}
