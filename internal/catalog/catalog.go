// Package catalog holds the static application catalog: each application
// and its per-package-manager package identifiers.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/prime399/packmate/internal/core"
)

// Application is one catalog entry. Packages maps a package manager id to
// the manager-specific package identifier, which may embed manager syntax
// (a cask marker, install flags).
type Application struct {
	ID       string            `yaml:"id" json:"id"`
	Name     string            `yaml:"name" json:"name"`
	Packages map[string]string `yaml:"packages" json:"packages"`
}

// Catalog is an ordered, immutable set of applications.
type Catalog struct {
	apps []Application
	byID map[string]int
}

type file struct {
	Apps []Application `yaml:"apps"`
}

// New builds a catalog from applications, validating ids and manager keys.
func New(apps []Application) (*Catalog, error) {
	known := make(map[string]bool, 11)
	for _, m := range core.Managers() {
		known[m] = true
	}

	byID := make(map[string]int, len(apps))
	for i, app := range apps {
		if app.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := byID[app.ID]; dup {
			return nil, fmt.Errorf("duplicate application id: %s", app.ID)
		}
		byID[app.ID] = i

		for manager := range app.Packages {
			if !known[manager] {
				return nil, fmt.Errorf("app %s: unknown package manager %q", app.ID, manager)
			}
		}
	}

	return &Catalog{apps: apps, byID: byID}, nil
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	return New(f.Apps)
}

// Apps returns the applications in catalog order.
func (c *Catalog) Apps() []Application {
	return c.apps
}

// App returns an application by id.
func (c *Catalog) App(id string) (Application, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Application{}, false
	}
	return c.apps[i], true
}

// Len returns the number of applications.
func (c *Catalog) Len() int {
	return len(c.apps)
}
