package advisor

import (
	"net/http"

	"github.com/HarvestHub/HH-Backend/internal/catalog"
	"github.com/HarvestHub/HH-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(provider Provider, history *catalog.Repository, fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()
	h := &Handler{provider: provider, history: history}

	r.Use(middleware.SessionMiddleware(fetcher))

	r.Post("/analyze", h.Analyze)
	r.Post("/chat", h.Chat)
	r.Post("/describe", h.Describe)

	return r
}
