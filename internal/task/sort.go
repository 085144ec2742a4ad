package task

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/josephgoksu/taskrank/models"
)

// Sort orders tasks for a local strategy. The input slice is not modified
// and tasks with equal keys keep their relative order.
func Sort(tasks []models.Task, strategy models.Strategy) ([]models.Task, error) {
	compare, err := comparator(strategy)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, compare)
	return sorted, nil
}

func comparator(strategy models.Strategy) (func(a, b models.Task) int, error) {
	switch strategy {
	case models.StrategyFastest:
		return compareHours, nil
	case models.StrategyHighImpact:
		return compareImportance, nil
	case models.StrategyDeadline:
		return compareDueDate, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotLocalStrategy, strategy)
	}
}

// compareHours puts the smallest estimate first.
func compareHours(a, b models.Task) int {
	return cmp.Compare(EffectiveHours(a), EffectiveHours(b))
}

// compareImportance puts the most important first.
func compareImportance(a, b models.Task) int {
	return cmp.Compare(EffectiveImportance(b), EffectiveImportance(a))
}

// compareDueDate puts the earliest date first and undated tasks last.
func compareDueDate(a, b models.Task) int {
	da, okA := EffectiveDueDate(a)
	db, okB := EffectiveDueDate(b)
	switch {
	case okA && okB:
		return da.Compare(db)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
