package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lenskeep/camvault-be/internal/api/handlers"
	"github.com/lenskeep/camvault-be/internal/auth"
	"github.com/lenskeep/camvault-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	cameraService services.CameraServiceProvider,
	corsOrigins []string,
	imagePath string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	cameraHandler := handlers.NewCameraHandler(cameraService)
	statsHandler := handlers.NewStatsHandler(cameraService)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Uploaded camera images
	r.Handle("/static/images/*", http.StripPrefix("/static/images/", http.FileServer(http.Dir(imagePath))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Everything below requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService))

			r.Route("/cameras", func(r chi.Router) {
				r.Get("/", cameraHandler.List)
				r.Post("/", cameraHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cameraHandler.Get)
					r.Put("/", cameraHandler.Update)
					r.Delete("/", cameraHandler.Delete)
					r.Post("/images", cameraHandler.UploadImage)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/brands", statsHandler.Brands)
				r.Get("/types", statsHandler.Types)
				r.Get("/decades", statsHandler.Decades)
				r.Get("/value", statsHandler.Value)
				r.Get("/value/history", statsHandler.ValueHistory)
			})

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.GetMe)
				r.Put("/password", userHandler.ChangePassword)
				r.Post("/deactivate", userHandler.Deactivate)
			})
		})
	})

	return r
}
