// Package crs implements the corridor risk score: an ordinal classification
// of (operational gap, mixing ratio) pairs into categories 0 (lowest risk)
// through 3 (highest or unclassifiable).
//
// The shipped thresholds are a documented placeholder, not a derived result,
// so the rule table is injectable rather than hard-baked.
package crs

import (
	"math"
	"strconv"
	"strings"
)

// Fallback is the category assigned when no rule matches or when either
// input is NaN.
const Fallback = 3

// Rule maps a pair of lower bounds to a category. A rule matches when
// gap >= MinGap and r >= MinR; rules are checked in order and the first
// match wins.
type Rule struct {
	MinGap   float64 `yaml:"min_gap" json:"min_gap"`
	MinR     float64 `yaml:"min_r" json:"min_r"`
	Category int     `yaml:"category" json:"category"`
}

// DefaultRules returns the placeholder thresholds, strictest first.
func DefaultRules() []Rule {
	return []Rule{
		{MinGap: 0.5, MinR: 5, Category: 0},
		{MinGap: 0.2, MinR: 2, Category: 1},
		{MinGap: 0.1, MinR: 1, Category: 2},
	}
}

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules    []Rule
	fallback int
}

// New builds a Classifier from a validated rule table. The fallback category
// applies when no rule matches.
func New(rules []Rule, fallback int) (*Classifier, error) {
	if err := Validate(rules, fallback); err != nil {
		return nil, err
	}
	c := &Classifier{rules: make([]Rule, len(rules)), fallback: fallback}
	copy(c.rules, rules)
	return c, nil
}

// Default returns a Classifier with the placeholder thresholds.
func Default() *Classifier {
	c, err := New(DefaultRules(), Fallback)
	if err != nil {
		// DefaultRules is validated by tests; this cannot happen at runtime.
		panic(err)
	}
	return c
}

// Rules returns a copy of the active rule table.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify maps an operational gap (eV) and mixing ratio R to a category.
// A NaN gap or R classifies as the fallback; +Inf R satisfies every MinR
// bound, so an uncoupled system with a wide gap still scores low risk.
// Every input maps to a category; there is no error path.
func (c *Classifier) Classify(gap, r float64) int {
	if math.IsNaN(gap) || math.IsNaN(r) {
		return c.fallback
	}
	for _, rule := range c.rules {
		if gap >= rule.MinGap && r >= rule.MinR {
			return rule.Category
		}
	}
	return c.fallback
}

// Validate checks that a rule table is usable: non-negative finite bounds,
// categories within the ordinal range, and thresholds that loosen
// monotonically so first-match-wins ordering is meaningful.
func Validate(rules []Rule, fallback int) error {
	var errs []string

	if len(rules) == 0 {
		errs = append(errs, "at least one rule is required")
	}
	if fallback < 0 || fallback > 3 {
		errs = append(errs, "fallback category must be in [0,3]")
	}

	for i, r := range rules {
		if math.IsNaN(r.MinGap) || math.IsInf(r.MinGap, 0) || r.MinGap < 0 {
			errs = append(errs, "rule "+strconv.Itoa(i)+": min_gap must be a finite number >= 0")
		}
		if math.IsNaN(r.MinR) || math.IsInf(r.MinR, 0) || r.MinR < 0 {
			errs = append(errs, "rule "+strconv.Itoa(i)+": min_r must be a finite number >= 0")
		}
		if r.Category < 0 || r.Category > 3 {
			errs = append(errs, "rule "+strconv.Itoa(i)+": category must be in [0,3]")
		}
		if i > 0 {
			prev := rules[i-1]
			if r.MinGap > prev.MinGap || r.MinR > prev.MinR {
				errs = append(errs, "rule "+strconv.Itoa(i)+": thresholds must not tighten after an earlier rule")
			}
		}
	}

	if len(errs) > 0 {
		return validationError(errs)
	}
	return nil
}

// UnclassifiedLabel replaces the numeric category for insufficient rows.
const UnclassifiedLabel = "unclassified"

// Label renders a category for display. Insufficient rows must never show a
// numeric category, stale or otherwise.
func Label(category int, insufficient bool) string {
	if insufficient {
		return UnclassifiedLabel
	}
	return strconv.Itoa(category)
}

// Insufficient reports whether a reference row is a placeholder whose derived
// columns must be suppressed: status "insufficient" (case-insensitive), the
// identifier sentinel "TBD" (case-insensitive), or a note starting "TODO:".
func Insufficient(status, id, note string) bool {
	if strings.EqualFold(strings.TrimSpace(status), "insufficient") {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(id), "TBD") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(note), "TODO:")
}
