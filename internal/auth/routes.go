package auth

import (
	"net/http"

	"github.com/HarvestHub/HH-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(svc *Service) http.Handler {
	r := chi.NewRouter()
	h := &Handler{svc: svc}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/login/google", h.LoginGoogle)
	r.Post("/verify", h.Verify)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(svc))
		r.Get("/me", h.Me)
		r.Post("/role", h.SelectRole)
	})

	return r
}
