package earth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// modelFile is the on-disk YAML layout of a model:
//
//	layers:
//	  - rho: 100
//	    thickness: 5
//	  - rho: 20
//	    thickness: 10
//	  - rho: 300
type modelFile struct {
	Layers []Layer `yaml:"layers"`
}

// LoadFile reads a layered model from a YAML file and validates it.
func LoadFile(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("earth: read model file: %w", err)
	}
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("earth: parse model file: %w", err)
	}
	m := Model(f.Layers)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveFile writes the model to a YAML file, overwriting any previous
// contents.
func (m Model) SaveFile(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(modelFile{Layers: m})
	if err != nil {
		return fmt.Errorf("earth: encode model file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("earth: write model file: %w", err)
	}
	return nil
}
