package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/taskrank/models"
)

// SubmitFunc starts an analysis run and blocks until it ends. Results and
// errors reach the UI through a TUIBridge, not the return value.
type SubmitFunc func(raw []byte, strategy models.Strategy) error

// AnalyzerOptions configures the interactive analyzer.
type AnalyzerOptions struct {
	Initial  string
	Strategy models.Strategy
	Submit   SubmitFunc
}

// Messages the bridge sends into the program.
type triggerMsg struct{ enabled bool }

type renderMsg struct {
	tasks    []models.RankedTask
	strategy models.Strategy
}

type resetMsg struct{}

type showErrMsg struct{ msg string }

type runDoneMsg struct{ err error }

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIBridge lets the orchestrator drive the analyzer: it is both the
// renderer and the trigger, forwarding every call as a program message.
type TUIBridge struct {
	sender Sender
}

// Attach connects the bridge to a program. Calls before Attach are dropped.
func (b *TUIBridge) Attach(s Sender) { b.sender = s }

func (b *TUIBridge) send(msg tea.Msg) {
	if b.sender != nil {
		b.sender.Send(msg)
	}
}

func (b *TUIBridge) Render(tasks []models.RankedTask, strategy models.Strategy) error {
	b.send(renderMsg{tasks: tasks, strategy: strategy})
	return nil
}

func (b *TUIBridge) Reset()               { b.send(resetMsg{}) }
func (b *TUIBridge) ShowError(msg string) { b.send(showErrMsg{msg: msg}) }
func (b *TUIBridge) SetEnabled(enabled bool) {
	b.send(triggerMsg{enabled: enabled})
}

type analyzerKeys struct {
	Analyze  key.Binding
	Next     key.Binding
	Prev     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Quit     key.Binding
}

var defaultAnalyzerKeys = analyzerKeys{
	Analyze:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analyze")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next strategy")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev strategy")),
	ScrollUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	ScrollDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

const editorHeight = 10

type analyzerModel struct {
	keys     analyzerKeys
	editor   textarea.Model
	spinner  spinner.Model
	results  viewport.Model
	submit   SubmitFunc
	strategy int

	enabled  bool
	pending  bool
	errMsg   string
	rendered bool
	width    int
}

func newAnalyzerModel(opts AnalyzerOptions) analyzerModel {
	ta := textarea.New()
	ta.Placeholder = `[{"title": "Fix login", "due_date": "2025-01-01", "estimated_hours": 2, "importance": 8}]`
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(editorHeight)
	ta.SetWidth(80)
	ta.SetValue(opts.Initial)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StylePrimary

	idx := 0
	for i, s := range models.Strategies() {
		if s == opts.Strategy {
			idx = i
		}
	}

	return analyzerModel{
		keys:     defaultAnalyzerKeys,
		editor:   ta,
		spinner:  sp,
		results:  viewport.New(80, 12),
		submit:   opts.Submit,
		strategy: idx,
		enabled:  true,
		width:    80,
	}
}

func (m analyzerModel) currentStrategy() models.Strategy {
	return models.Strategies()[m.strategy]
}

// busy reports whether the analyze key is disabled.
func (m analyzerModel) busy() bool {
	return !m.enabled || m.pending
}

func (m analyzerModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m analyzerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(max(msg.Width-4, 20))
		m.results.Width = max(msg.Width-2, 20)
		m.results.Height = max(msg.Height-editorHeight-9, 3)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Analyze):
			if m.busy() || m.submit == nil {
				return m, nil
			}
			m.pending = true
			raw := []byte(m.editor.Value())
			strategy := m.currentStrategy()
			submit := m.submit
			return m, func() tea.Msg {
				return runDoneMsg{err: submit(raw, strategy)}
			}
		case key.Matches(msg, m.keys.Next):
			m.strategy = (m.strategy + 1) % len(models.Strategies())
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			n := len(models.Strategies())
			m.strategy = (m.strategy + n - 1) % n
			return m, nil
		case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

	case triggerMsg:
		m.enabled = msg.enabled
		if msg.enabled {
			m.pending = false
		} else {
			m.errMsg = ""
		}
		return m, nil

	case renderMsg:
		m.errMsg = ""
		m.rendered = true
		m.results.SetContent(FormatCards(msg.tasks, msg.strategy))
		m.results.GotoTop()
		return m, nil

	case resetMsg:
		m.rendered = false
		m.results.SetContent("")
		return m, nil

	case showErrMsg:
		m.errMsg = msg.msg
		return m, nil

	case runDoneMsg:
		m.pending = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m analyzerModel) View() string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("taskrank") + "  ")
	sb.WriteString(StyleSubtle.Render("Strategy: ") + StyleStrategy.Render(string(m.currentStrategy())))
	sb.WriteString(StyleSubtle.Render(" · " + m.currentStrategy().Description()))
	sb.WriteString("\n")

	box := StyleReadyBox
	if m.busy() {
		box = StyleInputBox
	}
	sb.WriteString(box.Render(m.editor.View()))
	sb.WriteString("\n")

	switch {
	case m.busy():
		sb.WriteString(m.spinner.View() + " " + StyleSubtle.Render("Analyzing..."))
	default:
		sb.WriteString(StyleSuccess.Render("Ready"))
	}
	sb.WriteString("  " + StyleSubtle.Render(m.helpLine()) + "\n")

	if m.errMsg != "" {
		sb.WriteString(lipgloss.NewStyle().Width(m.width).Render(StyleError.Render(m.errMsg)))
		sb.WriteString("\n")
	}

	if m.rendered {
		sb.WriteString(m.results.View())
	} else {
		sb.WriteString(StyleSubtle.Render(PlaceholderMessage))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m analyzerModel) helpLine() string {
	parts := make([]string, 0, 5)
	for _, b := range []key.Binding{m.keys.Analyze, m.keys.Next, m.keys.Prev, m.keys.ScrollDn, m.keys.Quit} {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " • ")
}

// RunAnalyzer runs the interactive analyzer until the user quits. bridge
// must be the renderer and trigger the submit function's runs report to.
func RunAnalyzer(opts AnalyzerOptions, bridge *TUIBridge) error {
	p := tea.NewProgram(newAnalyzerModel(opts), tea.WithAltScreen())
	bridge.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run analyzer: %w", err)
	}
	return nil
}
