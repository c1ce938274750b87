package stats

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	submissiondto "enough/internal/modules/submission/dto"
	"enough/internal/ui/theme"
)

type Model struct {
	table table.Model
}

func New() Model {
	t := table.New(
		table.WithColumns([]table.Column{{Title: "Metric", Width: 22}, {Title: "Value", Width: 14}}),
		table.WithFocused(false),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Sapphire).Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return Model{table: t}
}

func (m *Model) SetStats(s submissiondto.StatsOutput) {
	last := "never"
	if !s.LastPractice.IsZero() {
		last = s.LastPractice.String()
	}
	rows := []table.Row{
		{"Exercise", s.Exercise},
		{"Days practised", strconv.Itoa(s.TotalDays)},
		{"Completions", strconv.Itoa(s.TotalCompletions)},
		{"Minutes writing", strconv.Itoa(s.TotalMinutes)},
		{"Current streak", strconv.Itoa(s.CurrentStreak)},
		{"Longest streak", strconv.Itoa(s.LongestStreak)},
		{"Last practice", last},
	}
	m.table.SetRows(rows)
	m.table.SetHeight(len(rows) + 2)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Pane.Render(m.table.View())
}
