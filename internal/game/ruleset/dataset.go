// Package ruleset holds the DSA rule dataset: attribute short names and the
// governing attributes of every talent, combat technique, spell and chant.
package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Attribute is one of the eight DSA attributes.
type Attribute struct {
	ShortName string `yaml:"short_name"`
}

// Checked is a rule element rolled against three attributes: a talent,
// spell or chant.
type Checked struct {
	Attributes []string `yaml:"attributes"`
}

// CombatTechnique is a weapon technique. Attributes lists the primary
// attributes that add to the parry level.
type CombatTechnique struct {
	Attributes []string `yaml:"attributes"`
	Ranged     bool     `yaml:"ranged"`
}

// Dataset is the read-only rule dataset. Map keys are lowercase identifiers.
type Dataset struct {
	Version          int                        `yaml:"version"`
	Attributes       map[string]Attribute       `yaml:"attributes"`
	Talents          map[string]Checked         `yaml:"talents"`
	CombatTechniques map[string]CombatTechnique `yaml:"combat_techniques"`
	Spells           map[string]Checked         `yaml:"spells"`
	Chants           map[string]Checked         `yaml:"chants"`
}

// Parse decodes a YAML dataset and validates it.
//
// Postcondition: Returns a valid Dataset or a non-nil error.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing rule dataset: %w", err)
	}
	ds.normalize()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Load reads a dataset from path. When path is a directory every .yaml/.yml
// file in it is merged in name order; an identifier defined twice is an error.
//
// Precondition: path must name a readable file or directory.
// Postcondition: Returns a valid Dataset or a non-nil error.
func Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule dataset %s: %w", path, err)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return Parse(data)
	}

	files, err := yamlFiles(path)
	if err != nil {
		return nil, err
	}
	merged := &Dataset{}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		var part Dataset
		if err := yaml.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("parsing rule dataset file %s: %w", f, err)
		}
		part.normalize()
		if err := merged.merge(&part); err != nil {
			return nil, fmt.Errorf("merging %s: %w", f, err)
		}
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Validate checks that every referenced attribute is defined.
//
// Postcondition: Returns nil or an error listing every violation.
func (d *Dataset) Validate() error {
	var errs []string
	if len(d.Attributes) == 0 {
		errs = append(errs, "no attributes defined")
	}
	check := func(section, id string, attrs []string) {
		for _, a := range attrs {
			if _, ok := d.Attributes[strings.ToLower(a)]; !ok {
				errs = append(errs, fmt.Sprintf("%s %q references unknown attribute %q", section, id, a))
			}
		}
	}
	for id, t := range d.Talents {
		check("talent", id, t.Attributes)
	}
	for id, t := range d.CombatTechniques {
		check("combat technique", id, t.Attributes)
	}
	for id, s := range d.Spells {
		check("spell", id, s.Attributes)
	}
	for id, c := range d.Chants {
		check("chant", id, c.Attributes)
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("invalid rule dataset: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ShortName returns the short name of an attribute, or the identifier itself
// when the attribute is unknown or has none.
func (d *Dataset) ShortName(attrID string) string {
	if a, ok := d.Attributes[strings.ToLower(attrID)]; ok && a.ShortName != "" {
		return a.ShortName
	}
	return attrID
}

func (d *Dataset) normalize() {
	d.Attributes = lowerKeys(d.Attributes)
	d.Talents = lowerKeys(d.Talents)
	d.CombatTechniques = lowerKeys(d.CombatTechniques)
	d.Spells = lowerKeys(d.Spells)
	d.Chants = lowerKeys(d.Chants)
}

func (d *Dataset) merge(o *Dataset) error {
	d.Version = max(d.Version, o.Version)
	var err error
	if d.Attributes, err = mergeMap("attribute", d.Attributes, o.Attributes); err != nil {
		return err
	}
	if d.Talents, err = mergeMap("talent", d.Talents, o.Talents); err != nil {
		return err
	}
	if d.CombatTechniques, err = mergeMap("combat technique", d.CombatTechniques, o.CombatTechniques); err != nil {
		return err
	}
	if d.Spells, err = mergeMap("spell", d.Spells, o.Spells); err != nil {
		return err
	}
	if d.Chants, err = mergeMap("chant", d.Chants, o.Chants); err != nil {
		return err
	}
	return nil
}

func lowerKeys[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

func mergeMap[V any](section string, dst, src map[string]V) (map[string]V, error) {
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		if _, exists := dst[k]; exists {
			return nil, fmt.Errorf("duplicate %s %q", section, k)
		}
		dst[k] = v
	}
	return dst, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
