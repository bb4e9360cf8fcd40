package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HarvestHub/HH-Backend/internal/store"
	"github.com/google/uuid"
)

type Handler struct {
	repo *Repository
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.repo.CropHistory()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

func (h *Handler) RecordHistory(w http.ResponseWriter, r *http.Request) {
	var item CropHealthHistoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if item.ImageURL == "" {
		http.Error(w, "imageUrl is required", http.StatusBadRequest)
		return
	}

	history, err := h.repo.RecordCropHistory(item)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(history)
}

func (h *Handler) Produce(w http.ResponseWriter, r *http.Request) {
	listings, err := h.repo.ProductListings()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

// SaveProduce replaces the whole produce collection with the request body.
// There is no per-record update: concurrent editors clobber each other and
// the last save wins.
func (h *Handler) SaveProduce(w http.ResponseWriter, r *http.Request) {
	var listings []ProductListing
	if err := json.NewDecoder(r.Body).Decode(&listings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	for i := range listings {
		if listings[i].ID == "" {
			listings[i].ID = uuid.NewString()
		}
	}

	if err := h.repo.SaveProductListings(listings); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

func (h *Handler) Fertilizers(w http.ResponseWriter, r *http.Request) {
	listings, err := h.repo.FertilizerListings()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

func (h *Handler) SaveFertilizers(w http.ResponseWriter, r *http.Request) {
	var listings []Fertilizer
	if err := json.NewDecoder(r.Body).Decode(&listings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	for i := range listings {
		if listings[i].ID == "" {
			listings[i].ID = uuid.NewString()
		}
	}

	if err := h.repo.SaveFertilizerListings(listings); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

func writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
