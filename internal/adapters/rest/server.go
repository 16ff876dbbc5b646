package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// ServerConfig carries the HTTP surface settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	JWTSecret      string
	UploadsDir     string
}

type Server struct {
	httpServer *http.Server
}

// NewServer wires the router: public search, detail and insights; JWT
// protected mutations and profile routes; static /uploads files.
func NewServer(
	cfg ServerConfig,
	baseLogger port.LoggerPort,
	properties *PropertyHandlers,
	insights *InsightsHandlers,
	users *UserHandlers,
	auth *AuthHandlers,
) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMiddleware := NewAuthMiddleware(cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", properties.Search)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Get("/my", properties.MyProperties)
				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireRole(domain.RoleLandlord, domain.RoleAdmin))
					r.Post("/", properties.Create)
				})
				r.Put("/{id}", properties.Update)
				r.Delete("/{id}", properties.Delete)
			})

			r.Get("/{id}", properties.GetByID)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/rent-trends", insights.RentTrends)
			r.Get("/property-stats", insights.PlatformStats)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/profile", users.GetProfile)
			r.Put("/profile", users.UpdateProfile)
			r.Put("/change-password", users.ChangePassword)
			r.Get("/saved-properties", users.ListSaved)
			r.Post("/save-property/{id}", users.ToggleSaved)
		})
	})

	// Uploaded listing photos.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: r,
		},
	}
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
