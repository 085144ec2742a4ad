package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"#", "Title", "Tier"},
		Rows: [][]string{
			{"1", "Fix login", "critical"},
			{"2", "Write release notes for 2.0", "low"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 1, widths[0])
	assert.Equal(t, 27, widths[1])
	assert.Equal(t, 8, widths[2])
}

func TestTable_ColumnWidths_WideRunes(t *testing.T) {
	table := &Table{
		Headers: []string{"Title"},
		Rows:    [][]string{{"日本語"}},
	}

	assert.Equal(t, 6, table.ColumnWidths()[0], "CJK runes take two cells each")
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"#", "Title"},
		Rows:     [][]string{{"1", "This is a very long title that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 1, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"#", "Title"},
		Rows: [][]string{
			{"1", "Alpha"},
			{"2", "Beta"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Alpha")
	assert.Contains(t, output, "Beta")
	assert.Contains(t, output, "─")
	assert.Len(t, strings.Split(strings.TrimRight(output, "\n"), "\n"), 4)
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_RowStyle(t *testing.T) {
	var styled []int
	table := &Table{
		Headers: []string{"Title"},
		Rows:    [][]string{{"a"}, {"b"}},
		RowStyle: func(row int) lipgloss.Style {
			styled = append(styled, row)
			return lipgloss.NewStyle()
		},
	}

	table.Render()
	assert.Equal(t, []int{0, 1}, styled)
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"#", "Title", "Due"},
		Rows:    [][]string{{"1"}},
	}

	assert.NotPanics(t, func() { table.Render() })
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"This is way too long", 10, "This is w…"},
		{"short", 10, "short"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
		{"日本語テキスト", 5, "日本…"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, truncate(tc.input, tc.width), tc.input)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}
