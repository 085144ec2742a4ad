package task

import (
	"strings"
	"time"

	"github.com/josephgoksu/taskrank/models"
)

// dueDateLayouts are tried in order when reading a due date.
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// EffectiveHours is the estimate used for ordering; a missing value counts as 0.
func EffectiveHours(t models.Task) float64 {
	if t.EstimatedHours == nil {
		return 0
	}
	return *t.EstimatedHours
}

// EffectiveImportance is the importance used for ordering; a missing value counts as 0.
func EffectiveImportance(t models.Task) int {
	if t.Importance == nil {
		return 0
	}
	return *t.Importance
}

// EffectiveDueDate parses the task's due date. ok is false when the date is
// missing or in no recognised format; such tasks sort after all dated ones.
func EffectiveDueDate(t models.Task) (due time.Time, ok bool) {
	return ParseDueDate(t.DueDate)
}

// ParseDueDate reads a date-like string in any of the accepted layouts.
func ParseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if due, err := time.Parse(layout, s); err == nil {
			return due, true
		}
	}
	return time.Time{}, false
}

// EffectiveScore is the score used for classification; a missing score counts as 0.
func EffectiveScore(score *float64) float64 {
	if score == nil {
		return 0
	}
	return *score
}
