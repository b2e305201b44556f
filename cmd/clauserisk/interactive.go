package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/clauserisk/internal/report"
	"github.com/unbound-force/clauserisk/internal/scoring"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	tuiStyles = report.DefaultStyles()
)

// maxClausePreview is the rune budget of the clause text line.
const maxClausePreview = 70

// maxActionPreview is the rune budget of the ACTION column.
const maxActionPreview = 50

// scoreModel is the Bubble Tea model for browsing scored clauses.
type scoreModel struct {
	assessment *scoring.Assessment
	viewport   viewport.Model
	help       help.Model
	keys       keyMap
	ready      bool
	content    string
}

func newScoreModel(a *scoring.Assessment) scoreModel {
	return scoreModel{
		assessment: a,
		help:       help.New(),
		keys:       defaultKeyMap,
		content:    renderScoreContent(a),
	}
}

func renderScoreContent(a *scoring.Assessment) string {
	var sb strings.Builder

	var clauses []taxonomy.ClauseRiskRecord
	var sum taxonomy.ContractRiskSummary
	if a != nil {
		clauses = a.Clauses
		sum = a.Summary
	}

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Contract Risk: %d clause(s), score %.1f/100, %d high-risk",
			len(clauses), sum.NormalizedScore, sum.HighRiskCount)))
	sb.WriteString("\n\n")

	for _, r := range clauses {
		bucket := tuiStyles.BucketStyle(r.SeverityBucket).Render(string(r.SeverityBucket))
		sb.WriteString(tuiHeaderStyle.Render(
			fmt.Sprintf("=== Clause %d: %s ===", r.Index+1, r.CanonicalCategory)))
		sb.WriteString(" " + bucket + "\n")
		sb.WriteString(statusStyle.Render(fmt.Sprintf("    %s", preview(r.ClauseText, maxClausePreview))))
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(fmt.Sprintf("    score %.2f, confidence %.2f -> %.2f, exposure %s",
			r.SeverityScore, r.RawConfidence, r.CalibratedConfidence, r.FinancialExposure.Level)))
		sb.WriteString("\n")

		for _, t := range r.HighRiskDetection.Triggers {
			sb.WriteString(tuiStyles.Fail.Render("    ! " + t))
			sb.WriteString("\n")
		}

		if len(r.MitigationStrategies) == 0 {
			sb.WriteString(statusStyle.Render("    No mitigations required."))
			sb.WriteString("\n\n")
			continue
		}

		rows := make([][]string, 0, len(r.MitigationStrategies))
		for _, m := range r.MitigationStrategies {
			rows = append(rows, []string{
				string(m.Priority),
				m.Strategy,
				preview(m.Action, maxActionPreview),
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tuiBorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tuiHeaderStyle
				}
				if col == 0 && row >= 0 && row < len(rows) {
					return tuiStyles.PriorityStyle(taxonomy.Priority(rows[row][0]))
				}
				return lipgloss.NewStyle()
			}).
			Headers("PRIORITY", "STRATEGY", "ACTION").
			Rows(rows...)

		sb.WriteString(t.String())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// preview flattens whitespace and truncates s to n runes with "...".
func preview(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

func (m scoreModel) Init() tea.Cmd {
	return nil
}

func (m scoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 0
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m scoreModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveScore launches the Bubble Tea TUI for browsing a scored
// contract.
func runInteractiveScore(a *scoring.Assessment) error {
	model := newScoreModel(a)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
