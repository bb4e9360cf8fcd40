package main

import (
	"log"

	"github.com/HarvestHub/HH-Backend/internal/auth"
	"github.com/HarvestHub/HH-Backend/internal/catalog"
	"github.com/HarvestHub/HH-Backend/internal/seeds"
	"github.com/HarvestHub/HH-Backend/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	kv := store.Connect()
	acc := store.NewAccessor(kv)

	if err := seeds.SeedAll(auth.NewService(acc), catalog.NewRepository(acc)); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
