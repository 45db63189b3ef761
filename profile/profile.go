// Package profile loads user-class descriptors and worker identities from
// YAML scenario profiles.
//
// The dispatchers themselves consume plain slices of types.UserClass and
// types.WorkerNode; this package is the static supplier for embeddings where
// the scenario is written down rather than produced programmatically:
//
//	user_classes:
//	  - name: Browser
//	    weight: 3
//	  - name: Api
//	    weight: 1
//	  - name: Admin
//	    fixed_count: 2
//	    sticky_tag: sessions
//	workers:
//	  - id: worker-1
//	    host: host-a
//	  - id: worker-2
//	    host: host-b
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Biometria-se/grizzly-sub003/types"
)

// UserClassSpec is the YAML shape of one user class. A present fixed_count
// makes the class fixed; weight is required otherwise.
type UserClassSpec struct {
	Name       string  `yaml:"name"`
	Weight     float64 `yaml:"weight,omitempty"`
	FixedCount *int    `yaml:"fixed_count,omitempty"`
	StickyTag  string  `yaml:"sticky_tag,omitempty"`
}

// Profile is a parsed scenario profile.
type Profile struct {
	UserClasses []UserClassSpec    `yaml:"user_classes"`
	Workers     []types.WorkerNode `yaml:"workers,omitempty"`
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	return Parse(data)
}

// Parse parses profile YAML and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (p *Profile) validate() error {
	if len(p.UserClasses) == 0 {
		return types.ErrNoUserClasses
	}

	names := make(map[string]bool, len(p.UserClasses))
	for _, spec := range p.UserClasses {
		if spec.Name == "" {
			return fmt.Errorf("user class without a name: %w", types.ErrUnknownUserClass)
		}
		if names[spec.Name] {
			return fmt.Errorf("user class %q: %w", spec.Name, types.ErrDuplicateUserClass)
		}
		names[spec.Name] = true

		if spec.FixedCount != nil {
			if *spec.FixedCount < 0 {
				return fmt.Errorf("user class %q: %w", spec.Name, types.ErrInvalidFixedCount)
			}
		} else if spec.Weight <= 0 {
			return fmt.Errorf("user class %q: %w", spec.Name, types.ErrInvalidWeight)
		}
	}

	ids := make(map[string]bool, len(p.Workers))
	for _, w := range p.Workers {
		if w.ID == "" || ids[w.ID] {
			return fmt.Errorf("worker %q: %w", w.ID, types.ErrDuplicateWorker)
		}
		ids[w.ID] = true
	}

	return nil
}

// UserClassList converts the profile's user classes into dispatcher
// descriptors in declaration order.
func (p *Profile) UserClassList() []types.UserClass {
	out := make([]types.UserClass, 0, len(p.UserClasses))
	for _, spec := range p.UserClasses {
		uc := types.UserClass{
			Name:      spec.Name,
			Weight:    spec.Weight,
			StickyTag: spec.StickyTag,
		}
		if spec.FixedCount != nil {
			uc.Fixed = true
			uc.FixedCount = *spec.FixedCount
		}
		out = append(out, uc)
	}

	return out
}

// WorkerList returns the profile's worker nodes in declaration order.
func (p *Profile) WorkerList() []types.WorkerNode {
	return append([]types.WorkerNode(nil), p.Workers...)
}
