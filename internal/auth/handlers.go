package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/HarvestHub/HH-Backend/internal/middleware"
	"github.com/HarvestHub/HH-Backend/internal/store"
	"github.com/HarvestHub/HH-Backend/internal/utils"
)

type Handler struct {
	svc *Service
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Signup(creds.Email, creds.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"email": creds.Email})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Login(creds.Email, creds.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, sessionCookie(user.Email))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if creds.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.LoginFederated(creds.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, sessionCookie(user.Email))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.svc.Verify(body.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(); err != nil {
		writeServiceError(w, err)
		return
	}

	expired := sessionCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CurrentSession()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		http.Error(w, "No active session", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) SelectRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if !body.Role.Valid() {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	email, ok := utils.GetEmailFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session email in context", http.StatusInternalServerError)
		return
	}

	user, err := h.svc.SelectRole(email, body.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// writeServiceError maps service error kinds onto HTTP statuses. Unrecognized
// errors are treated as internal.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrAccountExists):
		status = http.StatusConflict
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrWrongAuthMethod), errors.Is(err, ErrNotVerified):
		status = http.StatusForbidden
	case errors.Is(err, ErrBadCredential):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), status)
}

// sessionCookie builds the session cookie. Secure is enabled when PORT is set,
// which is how deployed environments are detected (local dev runs over plain
// HTTP and leaves PORT unset).
func sessionCookie(email string) *http.Cookie {
	deployed := os.Getenv("PORT") != ""
	sameSite := http.SameSiteLaxMode
	if deployed {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    email,
		Path:     "/",
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   deployed,
	}
}
