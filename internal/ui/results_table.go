package ui

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/taskrank/models"
)

// TableRenderer prints results as a compact table, one row per task.
type TableRenderer struct {
	out      io.Writer
	errOut   io.Writer
	maxWidth int

	mu       sync.Mutex
	rendered bool
}

// NewTableRenderer creates a TableRenderer writing results to out and
// errors to errOut.
func NewTableRenderer(out, errOut io.Writer) *TableRenderer {
	return &TableRenderer{out: out, errOut: errOut, maxWidth: 48}
}

func (r *TableRenderer) Render(tasks []models.RankedTask, strategy models.Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = true

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(r.out, StyleSubtle.Render(EmptyResultsMessage))
		return err
	}

	_, err := io.WriteString(r.out, ResultsTable(tasks, r.maxWidth).Render())
	return err
}

func (r *TableRenderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rendered {
		r.rendered = false
		_, _ = fmt.Fprintln(r.out, StyleSubtle.Render(PlaceholderMessage))
	}
}

func (r *TableRenderer) ShowError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.errOut, StyleError.Render(msg))
}

// ResultsTable lays out ranked tasks as a Table with tier-colored rows.
func ResultsTable(tasks []models.RankedTask, maxWidth int) *Table {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		score := "-"
		if t.PriorityScore != nil {
			score = strconv.FormatFloat(*t.PriorityScore, 'f', 4, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(t.Rank),
			string(t.Tier),
			score,
			t.Title,
			DueText(t.Task),
			EffortText(t.Task),
			ImportanceText(t.Task),
		})
	}

	return &Table{
		Headers:  []string{"#", "Tier", "Score", "Title", "Due", "Effort", "Importance"},
		Rows:     rows,
		MaxWidth: maxWidth,
		RowStyle: func(row int) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(TierColor(tasks[row].Tier))
		},
	}
}
