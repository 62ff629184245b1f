package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/andrewpaige1/promptdec-api/config"
	"github.com/andrewpaige1/promptdec-api/middleware"
)

// NewRouter builds the HTTP API.
//
// Middleware chain, outermost first: CORS, panic recovery, metrics,
// request logging. Resource routes additionally run bearer-token
// validation and user resolution, so every handler below them can rely
// on middleware.UserIDFromContext.
func NewRouter(h *DBHandler, cfg config.Config) (http.Handler, error) {
	tokens, err := middleware.EnsureValidToken(cfg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	r.Use(middleware.WithRequestLogging(h.Log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed here")
	})

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(tokens)
		r.Use(middleware.SyncUser(h.Store, cfg, h.Log))

		r.Get("/me", h.Me)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", h.ListDecks)
			r.Post("/", h.CreateDeck)
			r.Get("/{id}", h.GetDeck)
			r.Put("/{id}", h.UpdateDeck)
			r.Delete("/{id}", h.DeleteDeck)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.ListCards)
			r.Post("/", h.CreateCard)
			r.Get("/{id}", h.GetCard)
			r.Put("/{id}", h.UpdateCard)
			r.Delete("/{id}", h.DeleteCard)
			r.Post("/{id}/duplicate", h.DuplicateCard)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Get("/{id}", h.GetTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
		})
	})

	return cors.New(cfg.CORS()).Handler(r), nil
}
