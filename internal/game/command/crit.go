package command

import (
	"strings"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
	"github.com/cory-johannsen/dsa/internal/game/check"
)

// Crit rule variants selectable for skill, spell and chant checks.
const (
	CritRulesNone        = "none"
	CritRulesDefault     = "default"
	CritRulesAlternative = "alternative"
)

// CritRuleFor maps a configured crit rule variant to the rule applied to
// points-budget checks. The default rules need required 1s (or 20s) for a
// crit; the alternative rules confirm every extreme roll.
//
// Precondition: variant and required come from a validated config.Config.
// Postcondition: Returns a CritRule, or an internal error for unknown
// variants or required < 1 under the default rules.
func CritRuleFor(variant string, required int) (check.CritRule, error) {
	switch strings.ToLower(variant) {
	case CritRulesNone:
		return check.NoCrits(), nil
	case CritRulesDefault:
		if required < 1 {
			return check.CritRule{}, apperrors.Internal(nil, "required crits must be at least 1, got %d", required)
		}
		return check.ThresholdCount(required), nil
	case CritRulesAlternative:
		return check.Confirmable(), nil
	default:
		return check.CritRule{}, apperrors.Internal(nil, "unknown crit rules %q (valid: none, default, alternative)", variant)
	}
}
