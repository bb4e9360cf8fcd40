package catalog

import (
	"net/http"

	"github.com/HarvestHub/HH-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(repo *Repository, fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()
	h := &Handler{repo: repo}

	r.Use(middleware.SessionMiddleware(fetcher))

	r.Get("/history", h.History)
	r.Post("/history", h.RecordHistory)
	r.Get("/produce", h.Produce)
	r.Put("/produce", h.SaveProduce)
	r.Get("/fertilizers", h.Fertilizers)
	r.Put("/fertilizers", h.SaveFertilizers)

	return r
}
