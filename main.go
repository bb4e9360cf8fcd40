package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/HarvestHub/HH-Backend/internal/advisor"
	"github.com/HarvestHub/HH-Backend/internal/auth"
	"github.com/HarvestHub/HH-Backend/internal/catalog"
	"github.com/HarvestHub/HH-Backend/internal/middleware"
	"github.com/HarvestHub/HH-Backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	kv := store.Connect()
	acc := store.NewAccessor(kv)
	authSvc := auth.NewService(acc)
	repo := catalog.NewRepository(acc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(authSvc))
	r.Mount("/catalog", catalog.SetupRoutes(repo, authSvc))

	// The advisory surface only comes up with an API key; everything else
	// works without it.
	if provider, err := advisor.NewProvider(advisor.LoadFromEnv()); err != nil {
		log.Printf("advisor disabled: %v", err)
	} else {
		r.Mount("/advisor", advisor.SetupRoutes(provider, repo, authSvc))
	}

	log.Printf("Server listening on port :%s...", port)

	http.ListenAndServe("0.0.0.0:"+port, r)
}
