package character

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML or JSON character sheet and assigns it a fresh ID.
//
// Postcondition: Returns a Character with a non-empty Name or a non-nil error.
func Parse(data []byte) (*Character, error) {
	var c Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing character sheet: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = uuid.New()
	return &c, nil
}

// Load reads a character sheet from path.
//
// Precondition: path must name a readable file.
// Postcondition: Returns a valid Character or a non-nil error.
func Load(path string) (*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading character sheet %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the sheet's structural invariants.
func (c *Character) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("character name must not be empty"))
	}
	for i, t := range c.CombatTechniques {
		if (t.ID == "") == (t.RuleElement == nil) {
			errs = append(errs, fmt.Errorf("combat technique #%d must have exactly one of id or ruleelement", i+1))
		}
	}
	for i, m := range c.Spells {
		if (m.ID == "") == (m.RuleElement == nil) {
			errs = append(errs, fmt.Errorf("spell #%d must have exactly one of id or ruleelement", i+1))
		}
	}
	for i, m := range c.Chants {
		if (m.ID == "") == (m.RuleElement == nil) {
			errs = append(errs, fmt.Errorf("chant #%d must have exactly one of id or ruleelement", i+1))
		}
	}
	return errors.Join(errs...)
}
