package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/taskrank/models"
)

const (
	// EmptyResultsMessage is shown when a run produced no tasks.
	EmptyResultsMessage = "No tasks found or all tasks filtered out."
	// PlaceholderMessage is shown after results are cleared.
	PlaceholderMessage = "No results yet."
)

// CardRenderer prints one card per ranked task. Errors go to a separate
// writer, normally stderr.
type CardRenderer struct {
	out    io.Writer
	errOut io.Writer

	mu       sync.Mutex
	rendered bool
}

// NewCardRenderer creates a CardRenderer writing results to out and
// errors to errOut.
func NewCardRenderer(out, errOut io.Writer) *CardRenderer {
	return &CardRenderer{out: out, errOut: errOut}
}

// Render writes the ranked list.
func (r *CardRenderer) Render(tasks []models.RankedTask, strategy models.Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rendered = true
	_, err := io.WriteString(r.out, FormatCards(tasks, strategy))
	return err
}

// Reset restores the placeholder if results had been shown.
func (r *CardRenderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.rendered {
		return
	}
	r.rendered = false
	_, _ = fmt.Fprintln(r.out, StyleSubtle.Render(PlaceholderMessage))
}

// ShowError prints msg in the error style.
func (r *CardRenderer) ShowError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.errOut, StyleError.Render(msg))
}

// FormatCards renders every task as a card, or the empty-results message.
func FormatCards(tasks []models.RankedTask, strategy models.Strategy) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render(EmptyResultsMessage) + "\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(FormatCard(t, strategy))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatCard renders a single task. The details grid is left out for the
// suggest strategy.
func FormatCard(t models.RankedTask, strategy models.Strategy) string {
	heading := StyleTitle.Render(fmt.Sprintf("%d. %s", t.Rank, t.Title))
	lines := []string{heading + "  " + TierBadge(t.Tier)}

	if t.PriorityScore != nil {
		lines = append(lines, StyleScore.Render(fmt.Sprintf("Score: %.4f", *t.PriorityScore)))
	}

	if strategy != models.StrategySuggest {
		left := lipgloss.JoinVertical(lipgloss.Left,
			detail("Due", DueText(t.Task)),
			detail("Importance", ImportanceText(t.Task)),
		)
		right := lipgloss.JoinVertical(lipgloss.Left,
			detail("Effort", EffortText(t.Task)),
			detail("Dependencies", DependenciesText(t.Task)),
		)
		grid := lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().PaddingRight(4).Render(left),
			right,
		)
		lines = append(lines, grid)
	}

	if t.Explanation != "" {
		lines = append(lines,
			StyleLabel.Render("Reasoning:"),
			StyleSubtle.Render(t.Explanation),
		)
	}

	return CardStyle(t.Tier).Render(strings.Join(lines, "\n"))
}

func detail(label, value string) string {
	return StyleLabel.Render(label+":") + " " + StyleText.Render(value)
}

// DueText is the due date as entered, or "N/A".
func DueText(t models.Task) string {
	if t.DueDate == "" {
		return "N/A"
	}
	return t.DueDate
}

// EffortText is the estimate in hours; absent or zero estimates show "N/A".
func EffortText(t models.Task) string {
	if t.EstimatedHours == nil || *t.EstimatedHours == 0 {
		return "N/A hrs"
	}
	return strconv.FormatFloat(*t.EstimatedHours, 'f', -1, 64) + " hrs"
}

// ImportanceText is the importance out of ten, or "N/A/10".
func ImportanceText(t models.Task) string {
	if t.Importance == nil {
		return "N/A/10"
	}
	return strconv.Itoa(*t.Importance) + "/10"
}

// DependenciesText lists dependency ids, or "None".
func DependenciesText(t models.Task) string {
	if len(t.Dependencies) == 0 {
		return "None"
	}
	return strings.Join(t.Dependencies, ", ")
}
