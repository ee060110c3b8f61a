// Package character defines the DSA character sheet and the derived levels
// used to build check lines.
package character

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cory-johannsen/dsa/internal/game/ruleset"
)

// Attribute identifiers the derived values depend on.
const (
	AttrCourage = "mut"
	AttrAgility = "gewandtheit"
)

// DefaultTechniqueLevel is the level of a combat technique missing from the sheet.
const DefaultTechniqueLevel = 6

// Leveled is an identifier with a level.
type Leveled struct {
	ID    string `yaml:"id" json:"id"`
	Level int    `yaml:"level" json:"level"`
}

// RuleElement is a custom entry defined on the sheet rather than in the rule
// dataset. Attributes is only used by spells and chants.
type RuleElement struct {
	Name       string   `yaml:"name" json:"name"`
	Attributes []string `yaml:"check,omitempty" json:"check,omitempty"`
}

// Technique is a combat technique referenced by id or defined as a custom
// rule element.
type Technique struct {
	ID          string       `yaml:"id,omitempty" json:"id,omitempty"`
	RuleElement *RuleElement `yaml:"ruleelement,omitempty" json:"ruleelement,omitempty"`
	Level       int          `yaml:"level" json:"level"`
}

// Magic is a spell or chant referenced by id or defined as a custom rule
// element. A missing level counts as 0.
type Magic struct {
	ID          string       `yaml:"id,omitempty" json:"id,omitempty"`
	RuleElement *RuleElement `yaml:"ruleelement,omitempty" json:"ruleelement,omitempty"`
	Level       *int         `yaml:"level,omitempty" json:"level,omitempty"`
}

// Character is a loaded character sheet.
//
// ID is assigned at load time and only correlates log lines; it is not part
// of the sheet.
type Character struct {
	ID               uuid.UUID   `yaml:"-" json:"-"`
	Name             string      `yaml:"name" json:"name"`
	Attributes       []Leveled   `yaml:"attributes" json:"attributes"`
	Skills           []Leveled   `yaml:"skills" json:"skills"`
	CombatTechniques []Technique `yaml:"combattechniques" json:"combattechniques"`
	Spells           []Magic     `yaml:"spells" json:"spells"`
	Chants           []Magic     `yaml:"chants" json:"chants"`
}

func nameOf(id string, re *RuleElement) string {
	if re != nil {
		return re.Name
	}
	return id
}

// AttributeLevel returns the level of attribute id, or 0 if absent.
func (c *Character) AttributeLevel(id string) int {
	for _, a := range c.Attributes {
		if strings.EqualFold(a.ID, id) {
			return a.Level
		}
	}
	return 0
}

// SkillLevel returns the level of talent id, or 0 if absent.
func (c *Character) SkillLevel(id string) int {
	for _, s := range c.Skills {
		if strings.EqualFold(s.ID, id) {
			return s.Level
		}
	}
	return 0
}

// TechniqueLevel returns the level of combat technique id, or
// DefaultTechniqueLevel if absent.
func (c *Character) TechniqueLevel(id string) int {
	for _, t := range c.CombatTechniques {
		if strings.EqualFold(nameOf(t.ID, t.RuleElement), id) {
			return t.Level
		}
	}
	return DefaultTechniqueLevel
}

// AttackLevel returns technique level + max(0, (MU-8)/3).
func (c *Character) AttackLevel(technique string) int {
	return c.TechniqueLevel(technique) + max(0, (c.AttributeLevel(AttrCourage)-8)/3)
}

// ParryLevel returns technique level / 2 + max(0, (best primary attribute - 8)/3).
func (c *Character) ParryLevel(technique string, primary []string) int {
	best := 0
	for _, a := range primary {
		best = max(best, c.AttributeLevel(a))
	}
	return c.TechniqueLevel(technique)/2 + max(0, (best-8)/3)
}

// DodgeLevel returns GE / 2.
func (c *Character) DodgeLevel() int {
	return c.AttributeLevel(AttrAgility) / 2
}

// InitiativeLevel returns (MU + GE) / 2.
func (c *Character) InitiativeLevel() int {
	return (c.AttributeLevel(AttrCourage) + c.AttributeLevel(AttrAgility)) / 2
}

// SpellLevel returns the level of spell id, or 0 if absent.
func (c *Character) SpellLevel(id string) int {
	return magicLevel(c.Spells, id)
}

// ChantLevel returns the level of chant id, or 0 if absent.
func (c *Character) ChantLevel(id string) int {
	return magicLevel(c.Chants, id)
}

func magicLevel(entries []Magic, id string) int {
	for _, m := range entries {
		if strings.EqualFold(nameOf(m.ID, m.RuleElement), id) {
			if m.Level == nil {
				return 0
			}
			return *m.Level
		}
	}
	return 0
}

// CustomTechniques returns the sheet's custom combat techniques as lookup
// entries. Custom techniques are melee and have no primary attributes.
func (c *Character) CustomTechniques() []ruleset.Entry[ruleset.CombatTechnique] {
	var out []ruleset.Entry[ruleset.CombatTechnique]
	for _, t := range c.CombatTechniques {
		if t.RuleElement != nil {
			out = append(out, ruleset.Entry[ruleset.CombatTechnique]{Name: t.RuleElement.Name})
		}
	}
	return out
}

// CustomSpells returns the sheet's custom spells as lookup entries.
func (c *Character) CustomSpells() []ruleset.Entry[ruleset.Checked] {
	return customMagic(c.Spells)
}

// CustomChants returns the sheet's custom chants as lookup entries.
func (c *Character) CustomChants() []ruleset.Entry[ruleset.Checked] {
	return customMagic(c.Chants)
}

func customMagic(entries []Magic) []ruleset.Entry[ruleset.Checked] {
	var out []ruleset.Entry[ruleset.Checked]
	for _, m := range entries {
		if m.RuleElement != nil {
			out = append(out, ruleset.Entry[ruleset.Checked]{
				Name:  m.RuleElement.Name,
				Value: ruleset.Checked{Attributes: m.RuleElement.Attributes},
			})
		}
	}
	return out
}
