package catalog

import (
	_ "embed"
	"log"

	"github.com/goccy/go-yaml"
)

//go:embed fertilizer_seeds.yaml
var fertilizerSeedData []byte

// defaultFertilizers parses the embedded seed fixture. The fixture ships with
// the binary, so a parse failure is a build defect and fatals at startup.
func defaultFertilizers() []Fertilizer {
	var seeds []Fertilizer
	if err := yaml.Unmarshal(fertilizerSeedData, &seeds); err != nil {
		log.Fatal("Failed to parse fertilizer seed fixture: ", err)
	}
	return seeds
}
