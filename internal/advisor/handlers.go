package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HarvestHub/HH-Backend/internal/catalog"
)

type Handler struct {
	provider Provider
	history  *catalog.Repository
}

// Analyze diagnoses a photo. When the request carries an imageUrl (the data
// URI the client previews), the result is also recorded into the crop health
// history the way the client does after a successful analysis.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Image    string `json:"image"`
		MimeType string `json:"mimeType"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Image == "" || body.MimeType == "" {
		http.Error(w, "image and mimeType are required", http.StatusBadRequest)
		return
	}

	diagnosis, err := h.provider.AnalyzeCropHealth(r.Context(), body.Image, body.MimeType)
	if err != nil {
		writeProviderError(w, err)
		return
	}

	if body.ImageURL != "" {
		disease := diagnosis.Disease
		if diagnosis.IsHealthy {
			disease = "None"
		}
		_, err := h.history.RecordCropHistory(catalog.CropHealthHistoryItem{
			ImageURL: body.ImageURL,
			Analysis: catalog.CropAnalysis{Disease: disease, Remedy: diagnosis.Remedy},
		})
		if err != nil {
			// The diagnosis itself succeeded; losing the history entry is
			// not worth failing the request over.
			LogError(h.provider.Name(), "record history", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(diagnosis)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		History  []ChatMessage `json:"history"`
		Message  string        `json:"message"`
		Language Language      `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.provider.ChatResponse(r.Context(), body.History, body.Message, body.Language)
	if err != nil {
		writeProviderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

// Describe generates marketplace copy. A provider failure degrades to the
// client's fallback text rather than an error, matching the original.
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	description, err := h.provider.GenerateProductDescription(r.Context(), body.Name)
	if err != nil {
		LogError(h.provider.Name(), "describe", err)
		description = "Failed to generate description."
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"description": description})
}

func writeProviderError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAnalyzeFailed) || errors.Is(err, ErrChatFailed) {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
