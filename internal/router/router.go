package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/aeschyllus/expensetracker-be/internal/api/account"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/api/category"
	"github.com/aeschyllus/expensetracker-be/internal/api/user"
)

// Config contains the handlers and middleware needed for router setup.
// Server-wide middleware (request id, logging, recoverer) is applied before
// mounting this router in main.go.
type Config struct {
	AuthHandler            *auth.AuthHandler
	UserHandler            *user.UserHandler
	AccountHandler         *account.AccountHandler
	CategoryHandler        *category.CategoryHandler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		})

		// Bearer-token-protected resources
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", cfg.UserHandler.Create)
				r.Get("/", cfg.UserHandler.GetAll)
				r.Get("/{id}", cfg.UserHandler.Get)
				r.Patch("/{id}", cfg.UserHandler.Update)
				r.Delete("/{id}", cfg.UserHandler.Delete)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.GetAll)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Patch("/{id}", cfg.AccountHandler.Update)
				r.Delete("/{id}", cfg.AccountHandler.Delete)
			})

			r.Get("/categories", cfg.CategoryHandler.GetAll)
		})
	})

	return r
}
