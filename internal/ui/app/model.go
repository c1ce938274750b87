package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	scheduledto "enough/internal/modules/schedule/dto"
	submissiondto "enough/internal/modules/submission/dto"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/theme"
	statsview "enough/internal/ui/views/stats"
	todayview "enough/internal/ui/views/today"
	weekview "enough/internal/ui/views/week"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type schedulePort interface {
	Today(ctx context.Context) (scheduledto.TodayOutput, error)
}

type submissionPort interface {
	History(ctx context.Context, input submissiondto.HistoryInput) ([]submissiondto.RecordOutput, error)
	Stats(ctx context.Context, exercise string) (submissiondto.StatsOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabWeek
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Week", "Stats"}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct {
	today   scheduledto.TodayOutput
	records []submissiondto.RecordOutput
	stats   submissiondto.StatsOutput
	err     error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next tab")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Refresh}, {k.Help, k.Quit}}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the read-only dashboard. Writing happens in the line-based
// commands; the dashboard only shows where the user stands.
type Model struct {
	schedule    schedulePort
	submissions submissionPort
	weekTarget  int

	todayView todayview.Model
	weekView  weekview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	spinner   spinner.Model
	loading   bool
	status    string
	width     int
	height    int
}

func NewModel(schedule schedulePort, submissions submissionPort, weekTarget int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		schedule:    schedule,
		submissions: submissions,
		weekTarget:  weekTarget,
		todayView:   todayview.New(),
		weekView:    weekview.New(),
		statsView:   statsview.New(),
		activeTab:   tabToday,
		keys:        defaultKeys(),
		help:        help.New(),
		spinner:     sp,
		loading:     true,
		status:      "loading",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}
		m.todayView.SetToday(msg.today, practiced(msg.records), m.weekTarget)
		cmds = append(cmds, m.weekView.SetRecords(msg.records))
		m.statsView.SetStats(msg.stats)
		m.status = "ready"
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case "r":
			m.loading = true
			m.status = "refreshing"
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabWeek:
		m.weekView, tabCmd = m.weekView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.loading:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading…")
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabWeek:
		return m.weekView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "enough  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  r:refresh  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + theme.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-3, 1)}
	m.todayView, _ = m.todayView.Update(sz)
	m.weekView, _ = m.weekView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// practiced counts the week's records written on a practice day.
func practiced(records []submissiondto.RecordOutput) int {
	n := 0
	for _, r := range records {
		if r.Day > 0 {
			n++
		}
	}
	return n
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrSetupRequired):
		return "no progress yet: run `enough setup` first"
	case errors.Is(err, apperrors.ErrCorruptRecord):
		return "progress file is unreadable: run `enough setup --reset`"
	}
	return "error: " + err.Error()
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		today, err := m.schedule.Today(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		start := today.Position.WeekStart
		records, err := m.submissions.History(ctx, submissiondto.HistoryInput{
			Exercise: today.Exercise,
			Start:    start,
			End:      start.AddDays(6),
		})
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.submissions.Stats(ctx, today.Exercise)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{today: today, records: records, stats: stats}
	}
}
