// Package coverage validates requirement coverage: it cross-checks a declared
// inventory of required test names against the test functions actually
// present in a Go test file. This goes beyond line coverage — a requirement
// is covered only when its documented test exists.
package coverage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category groups the required tests for one area of the service.
type Category struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Count       int      `yaml:"count,omitempty"`
	Tests       []string `yaml:"tests"`
}

// Manifest is the expected-test inventory. File names the test source file
// the inventory describes; categories keep their declared order.
type Manifest struct {
	File       string     `yaml:"file"`
	Categories []Category `yaml:"categories"`
}

// LoadManifest reads a YAML manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := m.normalize(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// normalize fills in derived counts and rejects inconsistent categories.
func (m *Manifest) normalize() error {
	if len(m.Categories) == 0 {
		return fmt.Errorf("no categories declared")
	}
	for i := range m.Categories {
		c := &m.Categories[i]
		if c.Name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if c.Count == 0 {
			c.Count = len(c.Tests)
		}
		if c.Count != len(c.Tests) {
			return fmt.Errorf("category %q declares count %d but lists %d tests", c.Name, c.Count, len(c.Tests))
		}
	}
	return nil
}

// TotalExpected returns the number of tests the manifest requires.
func (m *Manifest) TotalExpected() int {
	total := 0
	for _, c := range m.Categories {
		total += c.Count
	}
	return total
}

// ExpectedSet returns the union of all required test names.
func (m *Manifest) ExpectedSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range m.Categories {
		for _, t := range c.Tests {
			set[t] = struct{}{}
		}
	}
	return set
}

// DefaultManifest returns the built-in inventory for this repository's HTTP
// handler tests. A YAML manifest loaded with LoadManifest replaces it when
// the inventory should live outside the binary.
func DefaultManifest() *Manifest {
	return &Manifest{
		File: "internal/api/handlers_test.go",
		Categories: []Category{
			{
				Name:        "root_endpoint",
				Description: "Root endpoint (/) tests",
				Count:       4,
				Tests: []string{
					"TestHomeReturns200",
					"TestHomeResponseContent",
					"TestResponseLatency",
					"TestInvalidRouteReturns404",
				},
			},
			{
				Name:        "health_endpoint",
				Description: "Health endpoint (/health) tests - liveness probe",
				Count:       9,
				Tests: []string{
					"TestHealthEndpointReturns200",
					"TestHealthEndpointContent",
					"TestHealthEndpointPerformance",
					"TestHealthEndpointCacheControl",
					"TestHealthEndpointHeaders",
					"TestHealthEndpointHTTPMethods",
					"TestHealthEndpointConsistency",
					"TestHealthEndpointNoSideEffects",
					"TestHealthVsRootEndpointIndependence",
				},
			},
			{
				Name:        "ready_endpoint",
				Description: "Ready endpoint (/ready) tests - readiness probe",
				Count:       9,
				Tests: []string{
					"TestReadyEndpointReturns200",
					"TestReadyEndpointContent",
					"TestReadyEndpointPerformance",
					"TestReadyEndpointCacheControl",
					"TestReadyEndpointCacheControlDetailed",
					"TestReadyEndpointHTTPMethods",
					"TestReadyEndpointConsistency",
					"TestReadyEndpointNoSideEffects",
					"TestReadyVsHealthIndependence",
				},
			},
		},
	}
}
