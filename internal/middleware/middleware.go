package middleware

import (
	"context"
	"net/http"

	"github.com/HarvestHub/HH-Backend/internal/utils"
)

// SessionCookieName carries the email of the logged-in account. The backend
// keeps a single durable session pointer; the cookie must match it.
const SessionCookieName = "session_email"

// SessionFetcher resolves the active session without tying the middleware to
// the auth package.
type SessionFetcher interface {
	ActiveSession() (*utils.SessionData, error)
}

func SessionMiddleware(fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
				return
			}

			session, err := fetcher.ActiveSession()
			if err != nil {
				http.Error(w, "Couldn't load session", http.StatusServiceUnavailable)
				return
			}
			if session == nil || session.Email != cookie.Value {
				http.Error(w, "No active session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextEmailKey, session.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var allowed = map[string]struct{}{
	"http://localhost:5173":        {},
	"http://localhost:5174":        {},
	"https://harvesthub.app":       {},
	"https://app.harvesthub.app":   {},
	"https://harvesthub.github.io": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it’s on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
