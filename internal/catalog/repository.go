package catalog

import (
	"time"

	"github.com/HarvestHub/HH-Backend/internal/store"
)

// Durable keys, unchanged from the original client.
const (
	CropHistoryKey        = "cropHealthHistory"
	ProductListingsKey    = "product-listings"
	FertilizerListingsKey = "fertilizer-listings"
)

// HistoryLimit caps the crop history. The oldest entry falls off when a new
// one is recorded against a full list.
const HistoryLimit = 10

// Repository provides the three record collections over the cache-aside
// accessor. Listings use whole-collection replace: callers read, mutate, and
// resubmit the full list, and the last save wins.
type Repository struct {
	store *store.Accessor
	seeds []Fertilizer
}

func NewRepository(acc *store.Accessor) *Repository {
	return &Repository{store: acc, seeds: defaultFertilizers()}
}

// CropHistory returns the analysis history, newest first, at most
// HistoryLimit entries.
func (r *Repository) CropHistory() ([]CropHealthHistoryItem, error) {
	history := []CropHealthHistoryItem{}
	if _, err := r.store.GetJSON(CropHistoryKey, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// RecordCropHistory prepends item and truncates to HistoryLimit. There is no
// dedup: analyzing the same image twice records two entries. Returns the
// updated history.
func (r *Repository) RecordCropHistory(item CropHealthHistoryItem) ([]CropHealthHistoryItem, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if item.ID == "" {
		item.ID = now
	}
	if item.Timestamp == "" {
		item.Timestamp = now
	}

	history, err := r.CropHistory()
	if err != nil {
		return nil, err
	}
	history = append([]CropHealthHistoryItem{item}, history...)
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	if err := r.store.PutJSON(CropHistoryKey, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *Repository) ProductListings() ([]ProductListing, error) {
	listings := []ProductListing{}
	if _, err := r.store.GetJSON(ProductListingsKey, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// SaveProductListings replaces the whole produce collection.
func (r *Repository) SaveProductListings(listings []ProductListing) error {
	if listings == nil {
		listings = []ProductListing{}
	}
	return r.store.PutJSON(ProductListingsKey, listings)
}

// FertilizerListings returns the fertilizer collection, seeding the default
// records the first time it is observed empty. The seed is persisted, so a
// second call returns the same records rather than re-seeding. A collection
// that was explicitly saved empty stays empty.
func (r *Repository) FertilizerListings() ([]Fertilizer, error) {
	listings := []Fertilizer{}
	found, err := r.store.GetJSON(FertilizerListingsKey, &listings)
	if err != nil {
		return nil, err
	}
	if !found && len(listings) == 0 {
		listings = append(listings, r.seeds...)
		if err := r.store.PutJSON(FertilizerListingsKey, listings); err != nil {
			return nil, err
		}
	}
	return listings, nil
}

// SaveFertilizerListings replaces the whole fertilizer collection.
func (r *Repository) SaveFertilizerListings(listings []Fertilizer) error {
	if listings == nil {
		listings = []Fertilizer{}
	}
	return r.store.PutJSON(FertilizerListingsKey, listings)
}
