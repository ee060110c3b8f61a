package command

import (
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
	"github.com/cory-johannsen/dsa/internal/game/character"
	"github.com/cory-johannsen/dsa/internal/game/check"
	"github.com/cory-johannsen/dsa/internal/game/dice"
	"github.com/cory-johannsen/dsa/internal/game/initiative"
	"github.com/cory-johannsen/dsa/internal/game/ruleset"
)

// Options tunes the executor. Zero fields take their defaults.
type Options struct {
	// SkillCrits is the crit rule of skill, spell and chant checks.
	SkillCrits check.CritRule
	// Limits bounds dice expressions.
	Limits dice.Limits
	// MaxRounds bounds initiative tie-break rounds.
	MaxRounds int
}

// CheckOutcome is a resolved check with everything needed to present it.
type CheckOutcome struct {
	// Title names the check target, e.g. "klettern" or "Attack: schwerter".
	Title        string             `json:"title" yaml:"title"`
	Character    string             `json:"character" yaml:"character"`
	Kind         check.Kind         `json:"-" yaml:"-"`
	Rule         check.CritRule     `json:"rule" yaml:"rule"`
	Lines        []check.Line       `json:"lines" yaml:"lines"`
	Facilitation check.Facilitation `json:"facilitation" yaml:"facilitation"`
	Result       check.Result       `json:"result" yaml:"result"`
}

// Outcome is the result of one command. Exactly one of Check, Roll and
// Initiative is set, except for help where none is.
type Outcome struct {
	Kind       Kind
	Check      *CheckOutcome
	Roll       *dice.RollResult
	Initiative *initiative.Order
}

// Executor runs bound commands against the rule dataset and a character.
type Executor struct {
	ds     *ruleset.Dataset
	opts   Options
	src    dice.Source
	roller *dice.Roller
	logger *zap.Logger
}

// NewExecutor creates an Executor rolling every die with src.
//
// Precondition: ds, src and logger must be non-nil.
// Postcondition: Returns an Executor with defaulted options.
func NewExecutor(ds *ruleset.Dataset, opts Options, src dice.Source, logger *zap.Logger) *Executor {
	if ds == nil || src == nil || logger == nil {
		panic("command: NewExecutor precondition violated: ds, src and logger must be non-nil")
	}
	if opts.Limits == (dice.Limits{}) {
		opts.Limits = dice.DefaultLimits()
	}
	if opts.MaxRounds == 0 {
		opts.MaxRounds = initiative.DefaultMaxRounds
	}
	return &Executor{
		ds:     ds,
		opts:   opts,
		src:    src,
		roller: dice.NewLoggedRoller(src, opts.Limits, logger),
		logger: logger,
	}
}

// Execute runs cmd for character c. c may be nil for commands that do not
// need a character.
//
// Postcondition: Returns an Outcome or an invalid-input error; rule data
// lookups and user-typed values are the only error sources.
func (e *Executor) Execute(cmd Command, c *character.Character) (Outcome, error) {
	if cmd.Kind.NeedsCharacter() && c == nil {
		return Outcome{}, apperrors.InvalidInput("%s: no character loaded", cmd.Kind)
	}

	var (
		out Outcome
		err error
	)
	switch cmd.Kind {
	case KindAttribute:
		out, err = e.attribute(cmd, c)
	case KindSkill:
		out, err = e.skill(cmd, c)
	case KindSpell:
		out, err = e.spell(cmd, c)
	case KindChant:
		out, err = e.chant(cmd, c)
	case KindAttack:
		out, err = e.attack(cmd, c)
	case KindDodge:
		out, err = e.dodge(cmd, c)
	case KindParry:
		out, err = e.parry(cmd, c)
	case KindRoll:
		out, err = e.roll(cmd)
	case KindInitiative:
		out = e.initiative(cmd, c)
	case KindHelp:
		out = Outcome{}
	default:
		panic(fmt.Sprintf("command: Execute precondition violated: unknown kind %v", cmd.Kind))
	}

	fields := []zap.Field{zap.Stringer("command", cmd.Kind)}
	if c != nil {
		fields = append(fields, zap.String("character", c.Name), zap.Stringer("character_id", c.ID))
	}
	if err != nil {
		e.logger.Warn("command rejected", append(fields, zap.Error(err))...)
		return Outcome{}, err
	}
	out.Kind = cmd.Kind
	if out.Check != nil {
		fields = append(fields,
			zap.String("target", out.Check.Title),
			zap.Ints("rolls", out.Check.Result.Rolls),
			zap.Bool("passed", out.Check.Result.Passed),
		)
	}
	e.logger.Info("command executed", fields...)
	return out, nil
}

func (e *Executor) attribute(cmd Command, c *character.Character) (Outcome, error) {
	attr, err := e.ds.FindAttribute(cmd.Target)
	if err != nil {
		return Outcome{}, err
	}
	lines := []check.Line{{Label: e.ds.ShortName(attr.Name), Level: c.AttributeLevel(attr.Name)}}
	return e.resolveCheck(cmd, c, attr.Name, lines, []string{attr.Name}, check.Simple(), check.Confirmable())
}

func (e *Executor) skill(cmd Command, c *character.Character) (Outcome, error) {
	talent, err := e.ds.FindTalent(cmd.Target)
	if err != nil {
		return Outcome{}, err
	}
	lines := e.attributeLines(talent.Value.Attributes, c)
	kind := check.PointsBudget(c.SkillLevel(talent.Name))
	return e.resolveCheck(cmd, c, talent.Name, lines, talent.Value.Attributes, kind, e.opts.SkillCrits)
}

func (e *Executor) spell(cmd Command, c *character.Character) (Outcome, error) {
	spell, err := e.ds.FindSpell(cmd.Target, c.CustomSpells()...)
	if err != nil {
		return Outcome{}, err
	}
	lines := e.attributeLines(spell.Value.Attributes, c)
	kind := check.PointsBudget(c.SpellLevel(spell.Name))
	return e.resolveCheck(cmd, c, spell.Name, lines, spell.Value.Attributes, kind, e.opts.SkillCrits)
}

func (e *Executor) chant(cmd Command, c *character.Character) (Outcome, error) {
	chant, err := e.ds.FindChant(cmd.Target, c.CustomChants()...)
	if err != nil {
		return Outcome{}, err
	}
	lines := e.attributeLines(chant.Value.Attributes, c)
	kind := check.PointsBudget(c.ChantLevel(chant.Name))
	return e.resolveCheck(cmd, c, chant.Name, lines, chant.Value.Attributes, kind, e.opts.SkillCrits)
}

func (e *Executor) attack(cmd Command, c *character.Character) (Outcome, error) {
	tech, err := e.ds.FindCombatTechnique(cmd.Target, c.CustomTechniques()...)
	if err != nil {
		return Outcome{}, err
	}
	lines := []check.Line{{Label: tech.Name, Level: c.AttackLevel(tech.Name)}}
	return e.resolveCheck(cmd, c, "Attack: "+tech.Name, lines, []string{"attack"}, check.Simple(), check.Confirmable())
}

func (e *Executor) parry(cmd Command, c *character.Character) (Outcome, error) {
	tech, err := e.ds.FindCombatTechnique(cmd.Target, c.CustomTechniques()...)
	if err != nil {
		return Outcome{}, err
	}
	lines := []check.Line{{Label: "Parry", Level: c.ParryLevel(tech.Name, tech.Value.Attributes)}}
	return e.resolveCheck(cmd, c, "Parry: "+tech.Name, lines, []string{"parry"}, check.Simple(), check.Confirmable())
}

func (e *Executor) dodge(cmd Command, c *character.Character) (Outcome, error) {
	lines := []check.Line{{Label: "Dodge", Level: c.DodgeLevel()}}
	return e.resolveCheck(cmd, c, "Dodge", lines, []string{"dodge"}, check.Simple(), check.Confirmable())
}

func (e *Executor) attributeLines(ids []string, c *character.Character) []check.Line {
	lines := make([]check.Line, len(ids))
	for i, id := range ids {
		lines[i] = check.Line{Label: e.ds.ShortName(id), Level: c.AttributeLevel(id)}
	}
	return lines
}

// resolveCheck builds the facilitation for lines and resolves the check. ids names
// each line a second way so "-a mut:1" and "-a mu:1" both apply.
func (e *Executor) resolveCheck(
	cmd Command,
	c *character.Character,
	title string,
	lines []check.Line,
	ids []string,
	kind check.Kind,
	rule check.CritRule,
) (Outcome, error) {
	labels := make([]string, len(lines))
	for i, l := range lines {
		labels[i] = l.Label
	}
	fac, err := check.ParseFacilitation(check.FacilitationInput{
		Flat:  cmd.Facilitation.Flat,
		Bonus: cmd.Facilitation.Bonus,
	}, labels)
	if err != nil {
		return Outcome{}, err
	}
	overrides, err := check.ParseOverrides(cmd.Facilitation.Overrides)
	if err != nil {
		return Outcome{}, err
	}
	fac.Apply(overrides, labels, ids)

	res := check.Resolve(lines, kind, rule, fac, e.src)
	return Outcome{Check: &CheckOutcome{
		Title:        title,
		Character:    c.Name,
		Kind:         kind,
		Rule:         rule,
		Lines:        lines,
		Facilitation: fac,
		Result:       res,
	}}, nil
}

func (e *Executor) roll(cmd Command) (Outcome, error) {
	res, err := e.roller.RollExpr(cmd.Expression)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Roll: &res}, nil
}

func (e *Executor) initiative(cmd Command, c *character.Character) Outcome {
	ps := make([]initiative.Participant, 0, 1+len(cmd.Extra))
	ps = append(ps, initiative.Participant{Name: c.Name, BaseLevel: c.InitiativeLevel()})
	ps = append(ps, cmd.Extra...)
	order := initiative.Resolve(ps, e.src, e.opts.MaxRounds)
	if order.Exhausted {
		e.logger.Warn("initiative tie-break rounds exhausted, keeping input order for remaining ties",
			zap.Int("max_rounds", e.opts.MaxRounds))
	}
	return Outcome{Initiative: &order}
}
