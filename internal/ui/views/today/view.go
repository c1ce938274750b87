package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	scheduledto "enough/internal/modules/schedule/dto"
	"enough/internal/ui/theme"
)

type Model struct {
	detail viewport.Model
	today  scheduledto.TodayOutput
	done   int
	target int
	loaded bool
}

func New() Model {
	return Model{detail: viewport.New(0, 0)}
}

// SetToday replaces the shown position. done counts the practice days
// already written this week out of target.
func (m *Model) SetToday(today scheduledto.TodayOutput, done, target int) {
	m.today = today
	m.done = done
	m.target = target
	m.loaded = true
	m.detail.SetContent(m.render())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.detail.Width = size.Width
		m.detail.Height = size.Height
		m.detail.SetContent(m.render())
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.detail.View()
}

func (m Model) render() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	pos := m.today.Position
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.today.Exercise) + "  " + theme.Muted.Render(pos.Date.String()) + "\n\n")

	switch pos.Mode {
	case "program_complete":
		sb.WriteString(theme.Good.Render("Program complete.") + "\n")
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("All %d weeks done. Custom check-ins remain available.", pos.TotalWeeks)) + "\n")
		return sb.String()
	case "weekend_reflection":
		sb.WriteString(fmt.Sprintf("Week %d of %d  ·  weekend reflection\n\n", pos.Week, pos.TotalWeeks))
	default:
		sb.WriteString(fmt.Sprintf("Week %d of %d  ·  day %d\n\n", pos.Week, pos.TotalWeeks, pos.Day))
	}
	if m.today.Theme != "" {
		sb.WriteString(theme.Muted.Render("Theme: "+m.today.Theme) + "\n\n")
	}
	switch {
	case m.today.Stem != nil:
		sb.WriteString(theme.Hot.Render(m.today.Stem.Prompt.Text) + "\n")
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d to %d completions", m.today.Stem.Prompt.MinCompletions, m.today.Stem.Prompt.MaxCompletions)) + "\n")
	case m.today.Reflection != nil:
		sb.WriteString(theme.Hot.Render(m.today.Reflection.Text) + "\n")
	}
	if pos.CatchUp {
		sb.WriteString("\n" + theme.Muted.Render("catch-up day: the week's practice days are not finished yet") + "\n")
	}
	if pos.Clamped {
		sb.WriteString("\n" + theme.Error.Render("start date lies in the future; showing day one") + "\n")
	}
	sb.WriteString("\n" + theme.Meter(m.done, m.target) + theme.Muted.Render(" this week") + "\n")
	return sb.String()
}
