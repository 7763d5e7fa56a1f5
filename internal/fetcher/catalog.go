package fetcher

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogFile []byte

// ConfigKey describes one configuration field a fetcher type accepts
type ConfigKey struct {
	Key         string `yaml:"key" json:"key"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// TypeInfo describes a fetcher type for clients building a source configuration
type TypeInfo struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	ConfigKeys  []ConfigKey `yaml:"config_keys" json:"config_keys"`
}

type catalog struct {
	Fetchers []TypeInfo `yaml:"fetchers"`
}

// LoadCatalog parses the embedded fetcher catalog, keeping only the types the
// registry can actually build (ordered as defined in the YAML)
func LoadCatalog(r *Registry) ([]TypeInfo, error) {
	var c catalog
	if err := yaml.Unmarshal(catalogFile, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fetcher catalog: %w", err)
	}

	registered := make(map[string]bool)
	for _, t := range r.Types() {
		registered[t] = true
	}

	types := make([]TypeInfo, 0, len(c.Fetchers))
	for _, info := range c.Fetchers {
		if registered[info.ID] {
			types = append(types, info)
		}
	}
	return types, nil
}
