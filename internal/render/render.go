// Package render formats command outcomes as plain or ANSI-colored text
// tables.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/dsa/internal/game/check"
	"github.com/cory-johannsen/dsa/internal/game/command"
	"github.com/cory-johannsen/dsa/internal/game/dice"
	"github.com/cory-johannsen/dsa/internal/game/initiative"
)

// ColumnWidth is the width of every table column.
const ColumnWidth = 17

// Renderer turns outcomes into text. The zero value renders without color.
type Renderer struct {
	Color bool
}

func (r Renderer) paint(color, text string) string {
	if !r.Color || text == "" {
		return text
	}
	return Colorize(color, text)
}

func title(s string) string {
	return cases.Title(language.German, cases.NoLower).String(s)
}

// table writes rows with every cell padded to ColumnWidth.
func table(b *strings.Builder, rows [][]string) {
	for _, row := range rows {
		var line strings.Builder
		for _, cell := range row {
			line.WriteString(Pad(cell, ColumnWidth))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
}

// Outcome renders any command outcome. reg supplies the command list for help.
//
// Precondition: out must come from command.Executor.Execute.
func (r Renderer) Outcome(out command.Outcome, reg *command.Registry) string {
	switch {
	case out.Check != nil:
		return r.Check(out.Check)
	case out.Roll != nil:
		return r.Roll(*out.Roll)
	case out.Initiative != nil:
		return r.Initiative(*out.Initiative)
	case out.Kind == command.KindHelp:
		return r.Help(reg)
	default:
		panic(fmt.Sprintf("render: Outcome precondition violated: empty outcome for %v", out.Kind))
	}
}

// Check renders a resolved check: heading, level table, verdict and crits.
func (r Renderer) Check(co *command.CheckOutcome) string {
	var b strings.Builder
	res := co.Result

	heading := fmt.Sprintf("%s, Check for %s", co.Character, title(co.Title))
	if co.Kind.IsPointsBudget() {
		heading += fmt.Sprintf(" (level %s)", withModifier(co.Kind.Points(), co.Facilitation.PointsBonus))
	}
	b.WriteString(r.paint(BrightYellow, heading))
	b.WriteString("\n\n")

	header := []string{""}
	levels := []string{"Character:"}
	rolls := []string{"Roll:"}
	for i, l := range co.Lines {
		header = append(header, r.paint(Cyan, title(l.Label)))
		levels = append(levels, withModifier(l.Level, co.Facilitation.PerLine[i]))
		rolls = append(rolls, r.roll(res.Rolls[i]))
	}
	rows := [][]string{header, levels, rolls}
	if co.Rule.Mode == check.CritConfirmable && res.HasCrits() {
		crits := []string{"Crit roll:"}
		for _, c := range res.ConfirmationRolls {
			if c == 0 {
				crits = append(crits, "")
			} else {
				crits = append(crits, strconv.Itoa(c))
			}
		}
		rows = append(rows, crits)
	}
	table(&b, rows)
	b.WriteByte('\n')

	switch {
	case !res.Passed:
		b.WriteString(r.paint(Red, "Check failed"))
	case res.HasQuality():
		b.WriteString(r.paint(Green, fmt.Sprintf("Check passed, quality level %d", res.Quality)))
	default:
		b.WriteString(r.paint(Green, "Check passed"))
	}
	b.WriteByte('\n')
	if co.Kind.IsPointsBudget() {
		fmt.Fprintf(&b, "Remaining points: %d\n", res.RemainingPoints)
	}

	r.critLine(&b, BrightGreen, res.CritSuccesses, "Critical success", "critical successes")
	r.critLine(&b, Yellow, res.UnconfirmedCritSuccesses, "Unconfirmed critical success", "unconfirmed critical successes")
	r.critLine(&b, BrightRed, res.CritFailures, "Critical failure", "critical failures")
	r.critLine(&b, Yellow, res.UnconfirmedCritFailures, "Unconfirmed critical failure", "unconfirmed critical failures")
	return b.String()
}

func (r Renderer) roll(v int) string {
	s := strconv.Itoa(v)
	switch v {
	case 1:
		return r.paint(BrightGreen, s)
	case 20:
		return r.paint(BrightRed, s)
	default:
		return s
	}
}

func (r Renderer) critLine(b *strings.Builder, color string, n int, one, many string) {
	switch {
	case n == 1:
		b.WriteString(r.paint(color, one))
	case n > 1:
		b.WriteString(r.paint(color, fmt.Sprintf("%d %s", n, many)))
	default:
		return
	}
	b.WriteByte('\n')
}

// withModifier renders "level", "level + mod" or "level - mod".
func withModifier(level, mod int) string {
	switch {
	case mod > 0:
		return fmt.Sprintf("%d + %d", level, mod)
	case mod < 0:
		return fmt.Sprintf("%d - %d", level, -mod)
	default:
		return strconv.Itoa(level)
	}
}

// Roll renders every die and the total of a dice expression.
func (r Renderer) Roll(res dice.RollResult) string {
	var b strings.Builder
	b.WriteString(r.paint(BrightYellow, "Roll "+res.Expression))
	b.WriteString("\n\nRolls:")
	for _, d := range res.Dice {
		b.WriteByte(' ')
		b.WriteString(d.String())
	}
	b.WriteByte('\n')
	if res.Modifier != 0 {
		fmt.Fprintf(&b, "Modifier: %+d\n", res.Modifier)
	}
	b.WriteString(r.paint(Bold, fmt.Sprintf("Total: %d", res.Total())))
	b.WriteByte('\n')
	return b.String()
}

// Initiative renders the order from first to act to last. Each row shows the
// initial roll split into base level and d6, followed by the tie-breaks.
func (r Renderer) Initiative(o initiative.Order) string {
	var b strings.Builder
	b.WriteString(r.paint(BrightYellow, "Initiative:"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(o.Outcomes))
	for _, out := range o.Outcomes {
		p := o.Participant(out)
		row := []string{
			p.Name + ":",
			fmt.Sprintf("%d (%d + %d/6)", out.Key[0], p.BaseLevel, o.Die(out)),
		}
		for _, v := range out.TieBreaks() {
			row = append(row, strconv.Itoa(v))
		}
		rows = append(rows, row)
	}
	table(&b, rows)
	if o.Exhausted {
		b.WriteString(r.paint(Dim, "Tie-break limit reached, remaining ties keep their listed order"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Help lists the registered commands grouped by category.
func (r Renderer) Help(reg *command.Registry) string {
	var b strings.Builder
	cats := reg.CommandsByCategory()
	for _, cat := range []string{command.CategoryCheck, command.CategoryCombat, command.CategoryDice, command.CategorySystem} {
		defs := cats[cat]
		if len(defs) == 0 {
			continue
		}
		b.WriteString(r.paint(BrightYellow, title(cat)))
		b.WriteByte('\n')
		for _, d := range defs {
			name := d.Name
			if len(d.Aliases) > 0 {
				name += " (" + strings.Join(d.Aliases, ", ") + ")"
			}
			usage := strings.TrimSpace(d.Name + " " + d.Usage)
			fmt.Fprintf(&b, "  %s  %s\n    %s\n", r.paint(Cyan, name), usage, d.Help)
		}
	}
	return b.String()
}
