// Package seeds loads the demo fixtures: two accounts per marketplace role
// and the default fertilizer listings. Existing records are never touched,
// so seeding is safe to re-run.
package seeds

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/HarvestHub/HH-Backend/internal/auth"
	"github.com/HarvestHub/HH-Backend/internal/catalog"
	"github.com/goccy/go-yaml"
)

//go:embed demo_accounts.yaml
var demoAccountData []byte

type demoAccount struct {
	Email       string    `yaml:"email"`
	Password    string    `yaml:"password"`
	Role        auth.Role `yaml:"role"`
	DisplayName string    `yaml:"displayName"`
}

func SeedAll(svc *auth.Service, repo *catalog.Repository) error {
	if err := SeedAccounts(svc); err != nil {
		return err
	}
	if err := SeedFertilizers(repo); err != nil {
		return err
	}
	return nil
}

// SeedAccounts creates the demo accounts that are missing.
func SeedAccounts(svc *auth.Service) error {
	var accounts []demoAccount
	if err := yaml.Unmarshal(demoAccountData, &accounts); err != nil {
		return fmt.Errorf("parsing demo account fixture: %w", err)
	}

	for _, acct := range accounts {
		if !acct.Role.Valid() {
			return fmt.Errorf("demo account %s has unknown role %q", acct.Email, acct.Role)
		}
		if err := svc.EnsureAccount(acct.Email, acct.Password, acct.Role, acct.DisplayName); err != nil {
			return fmt.Errorf("seeding account %s: %w", acct.Email, err)
		}
	}
	log.Printf("Seeded %d demo accounts", len(accounts))
	return nil
}

// SeedFertilizers materializes the default fertilizer listings by reading the
// collection once; the repository seeds it on first observation.
func SeedFertilizers(repo *catalog.Repository) error {
	listings, err := repo.FertilizerListings()
	if err != nil {
		return err
	}
	log.Printf("Fertilizer store has %d listings", len(listings))
	return nil
}
