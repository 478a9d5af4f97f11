// Package config loads the two catalog inputs the core treats as
// immutable for the duration of a job (spec §3, §5): the Machine
// description and a tenant's SizingProfile set. A real worker hydrates
// these from a database; this package is the YAML-backed path used for
// local runs, tests, and seed data.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/printloom/dtfbase/model"
)

// LoadMachine reads a Machine from a YAML file of the shape:
//
//	usable_width_mm: 600
//	max_length_mm: 2500
//	min_dpi: 150
func LoadMachine(path string) (model.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Machine{}, fmt.Errorf("read machine config %q: %w", path, err)
	}
	var m model.Machine
	if err := yaml.Unmarshal(data, &m); err != nil {
		return model.Machine{}, fmt.Errorf("parse machine config %q: %w", path, err)
	}
	return m, nil
}

// LoadProfileSet reads a ProfileSet from a YAML file of the shape:
//
//	tenant_id: acme
//	profiles:
//	  - sku_prefix: TEE-
//	    target_width_mm: 280
//	  - sku_prefix: ""
//	    target_width_mm: 200
//	    is_default: true
func LoadProfileSet(path string) (model.ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProfileSet{}, fmt.Errorf("read profile set %q: %w", path, err)
	}
	var ps model.ProfileSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return model.ProfileSet{}, fmt.Errorf("parse profile set %q: %w", path, err)
	}
	if err := validateProfileSet(ps); err != nil {
		return model.ProfileSet{}, err
	}
	return ps, nil
}

// validateProfileSet enforces spec §3: at most one profile per tenant may
// carry is_default=true.
func validateProfileSet(ps model.ProfileSet) error {
	defaults := 0
	for _, p := range ps.Profiles {
		if p.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("profile set %q: %d profiles flagged is_default, at most one is allowed", ps.TenantID, defaults)
	}
	return nil
}
