package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// File is the on-disk registry format: a list of variant descriptors.
type File struct {
	Variants []models.FormVariant `yaml:"variants"`
}

// LoadFile builds a registry from a YAML descriptor file. Variants are
// registered in file order, which becomes classification order.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML bytes.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}
	if len(f.Variants) == 0 {
		return nil, fmt.Errorf("registry file declares no variants")
	}

	r := New()
	for _, v := range f.Variants {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}
