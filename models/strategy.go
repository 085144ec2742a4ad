package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownStrategy is returned when a strategy name is not recognised.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects how a batch of tasks is ordered.
type Strategy string

const (
	StrategySmart      Strategy = "smart"
	StrategySuggest    Strategy = "suggest"
	StrategyFastest    Strategy = "fastest"
	StrategyHighImpact Strategy = "highimpact"
	StrategyDeadline   Strategy = "deadline"
)

var strategyDescriptions = map[Strategy]string{
	StrategySmart:      "Balanced score from the scoring service (urgency, importance, effort, dependencies)",
	StrategySuggest:    "Top suggestions from the scoring service with reasoning",
	StrategyFastest:    "Quick wins first: lowest estimated hours",
	StrategyHighImpact: "Most important first",
	StrategyDeadline:   "Earliest due date first",
}

// Strategies returns every strategy in display order.
func Strategies() []Strategy {
	return []Strategy{StrategySmart, StrategySuggest, StrategyFastest, StrategyHighImpact, StrategyDeadline}
}

// ParseStrategy maps a user-supplied name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownStrategy, name, strategyList())
	}
	return s, nil
}

func strategyList() string {
	names := make([]string, 0, len(strategyDescriptions))
	for _, s := range Strategies() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyDescriptions[s]
	return ok
}

// IsRemote reports whether results for s come from the scoring service.
func (s Strategy) IsRemote() bool {
	return s == StrategySmart || s == StrategySuggest
}

// Description is a one-line summary shown in help output.
func (s Strategy) Description() string {
	return strategyDescriptions[s]
}

func (s Strategy) String() string { return string(s) }

// PriorityTier is the discrete bucket a task is displayed under.
type PriorityTier string

const (
	TierCritical PriorityTier = "critical"
	TierHigh     PriorityTier = "high"
	TierMedium   PriorityTier = "medium"
	TierLow      PriorityTier = "low"
)

// Label renders the tier as a badge caption, e.g. "Critical Priority".
func (p PriorityTier) Label() string {
	return cases.Title(language.English).String(string(p)) + " Priority"
}

func (p PriorityTier) String() string { return string(p) }
