package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter constructs the router with all API endpoints registered.
// CORS is wide open: the game front-end is served from anywhere.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/balance", h.GetBalanceHandler)
	r.Post("/api/play", h.PlayHandler)
	r.Post("/api/withdraw", h.WithdrawHandler)
	r.Get("/api/leaderboard", h.LeaderboardHandler)
	r.Get("/api/house", h.HouseHandler)

	return r
}
