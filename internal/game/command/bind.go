package command

import (
	"strconv"
	"strings"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
	"github.com/cory-johannsen/dsa/internal/game/check"
	"github.com/cory-johannsen/dsa/internal/game/initiative"
)

// Command is a resolved command with its arguments bound to fields. Values
// are still raw text where the executor needs rule data to interpret them.
type Command struct {
	Kind Kind
	// Target is the (partial) name searched in the rule dataset.
	Target string
	// Facilitation is the raw facilitation typed by the user.
	Facilitation check.FacilitationInput
	// Expression is the dice expression of a roll.
	Expression string
	// Extra lists initiative participants besides the character.
	Extra []initiative.Participant
}

type flagSpec struct {
	names  []string
	values int
	kinds  []Kind
}

var flagSpecs = []flagSpec{
	{names: []string{"-a", "--attr", "--attribute-facilitation"}, values: 1, kinds: []Kind{KindSkill, KindSpell, KindChant}},
	{names: []string{"-b", "--bonus", "--bonus-points"}, values: 1, kinds: []Kind{KindSkill, KindSpell, KindChant}},
	{names: []string{"-n", "--new"}, values: 2, kinds: []Kind{KindInitiative}},
}

func lookupFlag(name string) (flagSpec, bool) {
	for _, f := range flagSpecs {
		for _, n := range f.names {
			if n == name {
				return f, true
			}
		}
	}
	return flagSpec{}, false
}

func (f flagSpec) allows(k Kind) bool {
	for _, a := range f.kinds {
		if a == k {
			return true
		}
	}
	return false
}

// isFlag reports whether arg is an option rather than a positional value.
// Negative numbers are positional so "-2" can be typed as an obstruction.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.Atoi(arg)
	return err != nil
}

// Bind resolves name through the registry and binds args to a Command.
//
// Postcondition: Returns a Command whose Kind is set, or an invalid-input error
// naming the offending argument.
func (r *Registry) Bind(name string, args []string) (Command, error) {
	def, ok := r.Resolve(strings.ToLower(name))
	if !ok {
		return Command{}, apperrors.InvalidInput("unknown command %q, use help to list commands", name)
	}
	cmd := Command{Kind: def.Kind}

	if def.Kind == KindRoll {
		cmd.Expression = strings.Join(args, " ")
		if strings.TrimSpace(cmd.Expression) == "" {
			return Command{}, apperrors.InvalidInput("%s: missing dice expression", def.Name)
		}
		return cmd, nil
	}

	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !isFlag(arg) {
			if def.Kind == KindInitiative {
				if err := cmd.addParticipant(def, arg); err != nil {
					return Command{}, err
				}
				continue
			}
			positional = append(positional, arg)
			continue
		}

		flag, inline, hasInline := strings.Cut(arg, "=")
		opt, ok := lookupFlag(flag)
		if !ok {
			return Command{}, apperrors.InvalidInput("%s: unknown option %q", def.Name, flag)
		}
		if !opt.allows(def.Kind) {
			return Command{}, apperrors.InvalidInput("%s: option %q is not supported", def.Name, flag)
		}
		var values []string
		if hasInline {
			values = append(values, inline)
		}
		for len(values) < opt.values {
			i++
			if i >= len(args) {
				return Command{}, apperrors.InvalidInput("%s: option %q needs %d value(s)", def.Name, flag, opt.values)
			}
			values = append(values, args[i])
		}
		if err := cmd.setFlag(opt.names[0], values); err != nil {
			return Command{}, err
		}
	}

	if err := cmd.bindPositional(def, positional); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

func (c *Command) setFlag(name string, values []string) error {
	switch name {
	case "-a":
		if c.Facilitation.Overrides != "" {
			c.Facilitation.Overrides += ","
		}
		c.Facilitation.Overrides += values[0]
	case "-b":
		c.Facilitation.Bonus = values[0]
	case "-n":
		p, err := participant(values[0], values[1])
		if err != nil {
			return err
		}
		c.Extra = append(c.Extra, p)
	}
	return nil
}

func (c *Command) bindPositional(def *Definition, pos []string) error {
	switch def.Kind {
	case KindAttribute, KindSkill, KindAttack, KindSpell, KindChant, KindParry:
		if len(pos) == 0 {
			return apperrors.InvalidInput("%s: missing name, usage: %s %s", def.Name, def.Name, def.Usage)
		}
		if len(pos) > 2 {
			return apperrors.InvalidInput("%s: unexpected argument %q", def.Name, pos[2])
		}
		c.Target = pos[0]
		if len(pos) == 2 {
			c.Facilitation.Flat = pos[1]
		}
	case KindDodge:
		if len(pos) > 1 {
			return apperrors.InvalidInput("%s: unexpected argument %q", def.Name, pos[1])
		}
		if len(pos) == 1 {
			c.Facilitation.Flat = pos[0]
		}
	case KindInitiative:
		for _, p := range pos {
			if err := c.addParticipant(def, p); err != nil {
				return err
			}
		}
	case KindHelp:
	}
	return nil
}

func (c *Command) addParticipant(def *Definition, arg string) error {
	name, level, ok := strings.Cut(arg, ":")
	if !ok {
		return apperrors.InvalidInput("%s: participant %q must be written as name:level", def.Name, arg)
	}
	p, err := participant(name, level)
	if err != nil {
		return err
	}
	c.Extra = append(c.Extra, p)
	return nil
}

func participant(name, level string) (initiative.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return initiative.Participant{}, apperrors.InvalidInput("initiative participant name must not be empty")
	}
	n, err := strconv.Atoi(strings.TrimSpace(level))
	if err != nil {
		return initiative.Participant{}, apperrors.InvalidInput("initiative level of %q must be an integer, got %q", name, level)
	}
	return initiative.Participant{Name: name, BaseLevel: n}, nil
}
