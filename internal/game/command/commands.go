// Package command provides the command registry, parser, argument binding and
// the executor dispatching DSA commands to the check, dice and initiative
// resolvers.
package command

import "fmt"

// Categories for organizing commands.
const (
	CategoryCheck  = "check"
	CategoryCombat = "combat"
	CategoryDice   = "dice"
	CategorySystem = "system"
)

// Kind is the closed set of commands the executor understands.
type Kind int

const (
	KindAttribute Kind = iota + 1
	KindSkill
	KindAttack
	KindSpell
	KindChant
	KindDodge
	KindParry
	KindRoll
	KindInitiative
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindSkill:
		return "check"
	case KindAttack:
		return "attack"
	case KindSpell:
		return "spell"
	case KindChant:
		return "chant"
	case KindDodge:
		return "dodge"
	case KindParry:
		return "parry"
	case KindRoll:
		return "roll"
	case KindInitiative:
		return "ini"
	case KindHelp:
		return "help"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NeedsCharacter reports whether commands of kind k roll against a
// character sheet.
func (k Kind) NeedsCharacter() bool {
	switch k {
	case KindRoll, KindHelp:
		return false
	default:
		return true
	}
}

// Definition describes a user-invocable command.
type Definition struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage is the argument synopsis shown by help.
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command.
	Category string
	// Kind is the executor dispatch key.
	Kind Kind
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Definition {
	return []Definition{
		// Checks
		{Name: "attribute", Aliases: []string{"attr"}, Usage: "<attribute> [facilitation]", Help: "Attribute check for the given attribute", Category: CategoryCheck, Kind: KindAttribute},
		{Name: "check", Aliases: []string{"skill", "talent"}, Usage: "<talent> [facilitation] [-a attr:n,...] [-b points]", Help: "Skill check for the given talent", Category: CategoryCheck, Kind: KindSkill},
		{Name: "spell", Aliases: []string{"zauber"}, Usage: "<spell> [facilitation] [-a attr:n,...] [-b points]", Help: "Spell check for the given spell", Category: CategoryCheck, Kind: KindSpell},
		{Name: "chant", Aliases: []string{"liturgie"}, Usage: "<chant> [facilitation] [-a attr:n,...] [-b points]", Help: "Check for the given chant", Category: CategoryCheck, Kind: KindChant},

		// Combat
		{Name: "attack", Aliases: []string{"at"}, Usage: "<technique> [facilitation]", Help: "Attack check for the given combat technique", Category: CategoryCombat, Kind: KindAttack},
		{Name: "parry", Aliases: []string{"pa"}, Usage: "<technique> [facilitation]", Help: "Parry check for the given combat technique", Category: CategoryCombat, Kind: KindParry},
		{Name: "dodge", Aliases: nil, Usage: "[facilitation]", Help: "Dodge check", Category: CategoryCombat, Kind: KindDodge},
		{Name: "ini", Aliases: []string{"initiative"}, Usage: "[name:level ...]", Help: "Initiative roll for the character and any extra participants", Category: CategoryCombat, Kind: KindInitiative},

		// Dice
		{Name: "roll", Aliases: []string{"r"}, Usage: "<expression>", Help: "Roll a dice expression such as 3d6+2", Category: CategoryDice, Kind: KindRoll},

		// System
		{Name: "help", Aliases: []string{"?"}, Usage: "", Help: "Show available commands", Category: CategorySystem, Kind: KindHelp},
	}
}
