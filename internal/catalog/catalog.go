package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"glasscat/internal/material"
)

// Catalog maps material names to materials.
type Catalog struct {
	// Name is the catalog comment from the CC record.
	Name string
	// Source is the file the catalog was parsed from, if any.
	Source string

	materials map[string]*material.Material
}

// New returns an empty catalog.
func New(name string) *Catalog {
	return &Catalog{
		Name:      name,
		materials: make(map[string]*material.Material),
	}
}

// Add stores m under its name, replacing any material with the same name.
func (c *Catalog) Add(m *material.Material) {
	if m == nil {
		return
	}
	if c.materials == nil {
		c.materials = make(map[string]*material.Material)
	}
	c.materials[m.Name] = m
}

// Lookup returns the material with exactly the given name.
func (c *Catalog) Lookup(name string) (*material.Material, error) {
	if m, ok := c.materials[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
}

// Resolve looks name up exactly and falls back to a case-insensitive match,
// so "n-bk7" finds "N-BK7".
func (c *Catalog) Resolve(name string) (*material.Material, error) {
	name = strings.TrimSpace(name)
	if m, ok := c.materials[name]; ok {
		return m, nil
	}

	fold := cases.Fold()
	want := fold.String(name)
	var matches []string
	for _, candidate := range c.Names() {
		if fold.String(candidate) == want {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
	case 1:
		return c.materials[matches[0]], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousName, name, strings.Join(matches, ", "))
	}
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.materials)
}

// Names returns the material names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.materials))
	for name := range c.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Materials returns the materials sorted by name.
func (c *Catalog) Materials() []*material.Material {
	out := make([]*material.Material, 0, len(c.materials))
	for _, name := range c.Names() {
		out = append(out, c.materials[name])
	}
	return out
}

// Merge copies the materials of others into c in argument order. A material
// from a later catalog replaces an earlier one with the same name.
func (c *Catalog) Merge(others ...*Catalog) {
	for _, other := range others {
		if other == nil {
			continue
		}
		for name, m := range other.materials {
			if c.materials == nil {
				c.materials = make(map[string]*material.Material, len(other.materials))
			}
			c.materials[name] = m
		}
	}
}
