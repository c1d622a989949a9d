package business

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfileFile reads a YAML profile. Fields missing from the file keep
// their DefaultProfile values.
func LoadProfileFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("business: read profile file: %w", err)
	}
	p := DefaultProfile("")
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("business: parse profile file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}
