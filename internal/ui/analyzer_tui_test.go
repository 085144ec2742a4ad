package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/taskrank/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
}

func update(t *testing.T, m analyzerModel, msg tea.Msg) (analyzerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(analyzerModel)
	require.True(t, ok)
	return am, cmd
}

func TestTUIBridge_ForwardsCalls(t *testing.T) {
	var b TUIBridge
	// Not attached yet: calls are dropped.
	b.SetEnabled(false)

	s := &recordingSender{}
	b.Attach(s)
	b.SetEnabled(false)
	require.NoError(t, b.Render(nil, models.StrategySmart))
	b.Reset()
	b.ShowError("Error: x")
	b.SetEnabled(true)

	assert.Equal(t, []tea.Msg{
		triggerMsg{enabled: false},
		renderMsg{strategy: models.StrategySmart},
		resetMsg{},
		showErrMsg{msg: "Error: x"},
		triggerMsg{enabled: true},
	}, s.msgs)
}

func TestAnalyzerModel_StrategyCycling(t *testing.T) {
	m := newAnalyzerModel(AnalyzerOptions{Strategy: models.StrategyDeadline})
	assert.Equal(t, models.StrategyDeadline, m.currentStrategy())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.StrategySmart, m.currentStrategy(), "wraps around")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, models.StrategyDeadline, m.currentStrategy())
}

func TestAnalyzerModel_SubmitDisabledWhileBusy(t *testing.T) {
	var calls int
	var gotRaw string
	var gotStrategy models.Strategy
	m := newAnalyzerModel(AnalyzerOptions{
		Initial:  `[{"title":"A"}]`,
		Strategy: models.StrategyFastest,
		Submit: func(raw []byte, strategy models.Strategy) error {
			calls++
			gotRaw = string(raw)
			gotStrategy = strategy
			return nil
		},
	})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.busy())

	// A second press before the run finishes does nothing.
	_, again := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, again)

	msg := cmd()
	assert.Equal(t, runDoneMsg{}, msg)
	assert.Equal(t, 1, calls)
	assert.Equal(t, `[{"title":"A"}]`, gotRaw)
	assert.Equal(t, models.StrategyFastest, gotStrategy)

	m, _ = update(t, m, msg)
	assert.False(t, m.busy())
}

func TestAnalyzerModel_TriggerControlsAvailability(t *testing.T) {
	m := newAnalyzerModel(AnalyzerOptions{Submit: func([]byte, models.Strategy) error { return nil }})

	m, _ = update(t, m, triggerMsg{enabled: false})
	assert.True(t, m.busy())
	assert.Contains(t, m.View(), "Analyzing...")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)

	m, _ = update(t, m, triggerMsg{enabled: true})
	assert.False(t, m.busy())
	assert.Contains(t, m.View(), "Ready")
}

func TestAnalyzerModel_ResultsAndErrors(t *testing.T) {
	plainOutput(t)

	m := newAnalyzerModel(AnalyzerOptions{})
	assert.Contains(t, m.View(), PlaceholderMessage)

	m, _ = update(t, m, renderMsg{
		tasks:    []models.RankedTask{rankedTask("Fix login", 1, models.TierMedium)},
		strategy: models.StrategyFastest,
	})
	view := m.View()
	assert.Contains(t, view, "1. Fix login")
	assert.NotContains(t, view, PlaceholderMessage)

	m, _ = update(t, m, resetMsg{})
	m, _ = update(t, m, showErrMsg{msg: "Error: API returned status 500. Details: scoring unavailable"})
	view = m.View()
	assert.Contains(t, view, PlaceholderMessage)
	assert.Contains(t, view, "scoring unavailable")

	// Starting another run hides the previous error.
	m, _ = update(t, m, triggerMsg{enabled: false})
	assert.NotContains(t, m.View(), "scoring unavailable")
}

func TestAnalyzerModel_Quit(t *testing.T) {
	m := newAnalyzerModel(AnalyzerOptions{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSpinner_TriggerToggles(t *testing.T) {
	var buf syncBuffer
	s := NewSpinnerTo(&buf, "Analyzing...")
	s.delay = 5 * time.Millisecond

	s.SetEnabled(false)
	assert.True(t, s.Active())
	s.SetEnabled(false)

	assert.Eventually(t, func() bool { return strings.Contains(buf.String(), "Analyzing...") }, time.Second, 5*time.Millisecond)

	s.SetEnabled(true)
	assert.False(t, s.Active())
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))

	// Stopping twice is harmless.
	s.SetEnabled(true)
}

// activityRenderer records whether the spinner was running at each call.
type activityRenderer struct {
	spinner *Spinner
	active  []bool
}

func (r *activityRenderer) Render([]models.RankedTask, models.Strategy) error {
	r.active = append(r.active, r.spinner.Active())
	return nil
}
func (r *activityRenderer) Reset()           { r.active = append(r.active, r.spinner.Active()) }
func (r *activityRenderer) ShowError(string) { r.active = append(r.active, r.spinner.Active()) }

func TestSpinnerRenderer_StopsSpinnerBeforeOutput(t *testing.T) {
	var buf syncBuffer
	s := NewSpinnerTo(&buf, "Analyzing...")
	s.delay = time.Millisecond
	inner := &activityRenderer{spinner: s}
	r := NewSpinnerRenderer(inner, s)

	s.SetEnabled(false)
	require.NoError(t, r.Render(nil, models.StrategyFastest))

	s.SetEnabled(false)
	r.Reset()
	s.SetEnabled(false)
	r.ShowError("Error: boom")

	assert.Equal(t, []bool{false, false, false}, inner.active)
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
