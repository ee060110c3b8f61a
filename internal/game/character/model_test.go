package character_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dsa/internal/game/character"
)

const sheet = `
name: Alrik
attributes:
  - {id: Mut, level: 14}
  - {id: gewandtheit, level: 13}
  - {id: koerperkraft, level: 15}
skills:
  - {id: klettern, level: 6}
combattechniques:
  - {id: schwerter, level: 12}
  - {ruleelement: {name: Dreschflegel}, level: 9}
spells:
  - {id: odem_arcanum, level: 5}
  - {id: visibili}
  - {ruleelement: {name: Kerzenlicht, check: [klugheit, intuition, charisma]}, level: 3}
chants:
  - {ruleelement: {name: Hausandacht, check: [mut, mut, charisma]}}
`

func mustParse(t *testing.T, data string) *character.Character {
	t.Helper()
	c, err := character.Parse([]byte(data))
	require.NoError(t, err)
	return c
}

func TestParse_Sheet(t *testing.T) {
	c := mustParse(t, sheet)
	assert.Equal(t, "Alrik", c.Name)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, 14, c.AttributeLevel("mut"))
	assert.Equal(t, 14, c.AttributeLevel("MUT"))
	assert.Equal(t, 0, c.AttributeLevel("klugheit"))
	assert.Equal(t, 6, c.SkillLevel("Klettern"))
	assert.Equal(t, 0, c.SkillLevel("zechen"))
}

func TestParse_JSON(t *testing.T) {
	c := mustParse(t, `{"name": "Bosper", "attributes": [{"id": "gewandtheit", "level": 12}],
  "combattechniques": [{"id": "dolche", "level": 10}]}`)
	assert.Equal(t, "Bosper", c.Name)
	assert.Equal(t, 6, c.DodgeLevel())
	assert.Equal(t, 10, c.TechniqueLevel("dolche"))
}

func TestParse_AssignsDistinctIDs(t *testing.T) {
	a := mustParse(t, sheet)
	b := mustParse(t, sheet)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParse_Invalid(t *testing.T) {
	_, err := character.Parse([]byte("attributes: []\n"))
	assert.ErrorContains(t, err, "name")

	_, err = character.Parse([]byte("name: X\ncombattechniques:\n  - {level: 3}\n"))
	assert.ErrorContains(t, err, "combat technique #1")

	_, err = character.Parse([]byte("name: X\nspells:\n  - {id: a, ruleelement: {name: b}}\n"))
	assert.ErrorContains(t, err, "spell #1")

	_, err = character.Parse([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestDerivedLevels(t *testing.T) {
	c := mustParse(t, sheet)
	// attack: 12 + (14-8)/3 = 14
	assert.Equal(t, 14, c.AttackLevel("schwerter"))
	// unknown technique defaults to 6
	assert.Equal(t, 8, c.AttackLevel("boegen"))
	assert.Equal(t, 11, c.AttackLevel("dreschflegel"))
	// parry: 12/2 + (15-8)/3 = 8
	assert.Equal(t, 8, c.ParryLevel("schwerter", []string{"gewandtheit", "koerperkraft"}))
	assert.Equal(t, 7, c.ParryLevel("schwerter", []string{"gewandtheit"}))
	assert.Equal(t, 6, c.ParryLevel("schwerter", nil))
	assert.Equal(t, 6, c.DodgeLevel())
	assert.Equal(t, 13, c.InitiativeLevel())
}

func TestMagicLevels(t *testing.T) {
	c := mustParse(t, sheet)
	assert.Equal(t, 5, c.SpellLevel("odem_arcanum"))
	assert.Equal(t, 0, c.SpellLevel("visibili"), "missing level counts as 0")
	assert.Equal(t, 3, c.SpellLevel("kerzenlicht"))
	assert.Equal(t, 0, c.SpellLevel("ignifaxius"))
	assert.Equal(t, 0, c.ChantLevel("hausandacht"))
}

func TestCustomEntries(t *testing.T) {
	c := mustParse(t, sheet)
	techs := c.CustomTechniques()
	require.Len(t, techs, 1)
	assert.Equal(t, "Dreschflegel", techs[0].Name)
	assert.False(t, techs[0].Value.Ranged)

	spells := c.CustomSpells()
	require.Len(t, spells, 1)
	assert.Equal(t, "Kerzenlicht", spells[0].Name)
	assert.Equal(t, []string{"klugheit", "intuition", "charisma"}, spells[0].Value.Attributes)

	chants := c.CustomChants()
	require.Len(t, chants, 1)
	assert.Equal(t, []string{"mut", "mut", "charisma"}, chants[0].Value.Attributes)
}

func TestLoad_BundledSheet(t *testing.T) {
	c, err := character.Load(filepath.Join("..", "..", "..", "content", "characters", "alrik.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Alrik", c.Name)
	assert.Equal(t, 14, c.InitiativeLevel())
}

func TestLoad_Missing(t *testing.T) {
	_, err := character.Load(filepath.Join(t.TempDir(), "nobody.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0644))
	c, err := character.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Alrik", c.Name)
}

func TestDerivedLevels_Property_NonNegativeBonuses(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		mu := rapid.IntRange(0, 20).Draw(rt, "mu")
		tech := rapid.IntRange(0, 20).Draw(rt, "tech")
		c := &character.Character{
			Name:             "X",
			Attributes:       []character.Leveled{{ID: "mut", Level: mu}},
			CombatTechniques: []character.Technique{{ID: "schwerter", Level: tech}},
		}
		assert.GreaterOrEqual(rt, c.AttackLevel("schwerter"), tech)
		assert.GreaterOrEqual(rt, c.ParryLevel("schwerter", []string{"mut"}), tech/2)
	})
}
