package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	submissiondto "enough/internal/modules/submission/dto"
	"enough/internal/ui/theme"
)

type dayItem struct {
	record submissiondto.RecordOutput
}

func (i dayItem) Title() string { return i.record.Date.String() + "  " + i.record.Date.Weekday().String() }
func (i dayItem) Description() string {
	total := 0
	for _, e := range i.record.Entries {
		total += len(e.Completions)
	}
	return fmt.Sprintf("%d stems · %d completions", len(i.record.Entries), total)
}
func (i dayItem) FilterValue() string { return i.record.Date.String() }

// Model lists the week's practice days beside the selected day's answers.
type Model struct {
	list   list.Model
	detail viewport.Model
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "This week"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return Model{list: l, detail: viewport.New(0, 0)}
}

func (m *Model) SetRecords(records []submissiondto.RecordOutput) tea.Cmd {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = dayItem{record: r}
	}
	cmd := m.list.SetItems(items)
	m.syncDetail()
	return cmd
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.resize()
		return m, nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.syncDetail()
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 35 / 100
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(max(m.width-listW-4, 1)).Height(max(m.height-2, 1)).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m *Model) resize() {
	listW := m.width * 35 / 100
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(m.width-listW-6, 1)
	m.detail.Height = max(m.height-4, 1)
}

func (m *Model) syncDetail() {
	item, ok := m.list.SelectedItem().(dayItem)
	if !ok {
		m.detail.SetContent(theme.Muted.Render("Nothing written this week yet."))
		return
	}
	var sb strings.Builder
	for _, e := range item.record.Entries {
		sb.WriteString(theme.Title.Render(e.Stem) + "\n")
		for _, c := range e.Completions {
			sb.WriteString("  - " + c + "\n")
		}
		sb.WriteString("\n")
	}
	if item.record.DurationSeconds > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d min writing", (item.record.DurationSeconds+59)/60)))
	}
	m.detail.SetContent(sb.String())
}
