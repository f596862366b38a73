package httpserver

import (
	"net/http"
	"time"

	"family-scheduler-go/internal/config"
	"family-scheduler-go/internal/transport/httpserver/handler"
	corsmw "family-scheduler-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(corsmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/user", handlers.AuthUser)
		r.Get("/auth/logout", handlers.Logout)

		r.Post("/families", handlers.CreateFamily)
		r.Get("/families/search", handlers.SearchFamilies)
		r.Post("/families/join", handlers.JoinFamily)

		r.Post("/activities", handlers.CreateActivity)
		r.Delete("/activities/{id}", handlers.DeleteActivity)
	})

	return r
}
