package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "tempo/internal/modules/session/dto"
	"tempo/internal/ui/components"
	"tempo/internal/ui/theme"
	sessionsview "tempo/internal/ui/views/sessions"
	statsview "tempo/internal/ui/views/stats"
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSessions tabID = iota
	tabStats
	tabCount
)

var tabNames = [tabCount]string{"Sessions", "Stats"}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	active   tabID
	sessions sessionsview.Model
	stats    statsview.Model
	palette  components.Palette
	width    int
	height   int
}

func NewModel(sessions sessionsview.SessionPort, analytics statsview.AnalyticsPort) Model {
	return Model{
		sessions: sessionsview.New(sessions),
		stats:    statsview.New(analytics),
		palette:  components.NewPalette(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sessions.Init(), m.stats.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(msg.Width)
		inner := tea.WindowSizeMsg{Width: msg.Width - 4, Height: msg.Height - 6}
		var cmd tea.Cmd
		m.sessions, cmd = m.sessions.Update(inner)
		cmds = append(cmds, cmd)
		m.stats, cmd = m.stats.Update(inner)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case components.PaletteSubmitMsg:
		cmd := m.executePalette(msg.Input)
		return m, cmd

	case components.PaletteCancelMsg:
		return m, nil
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % tabCount
			return m, m.refreshActive()
		case ":":
			return m, m.palette.Open()
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case tabSessions:
		m.sessions, cmd = m.sessions.Update(msg)
	case tabStats:
		m.stats, cmd = m.stats.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var tabs []string
	for id, name := range tabNames {
		style := theme.Muted
		if tabID(id) == m.active {
			style = theme.Hot
		}
		tabs = append(tabs, style.Render(name))
	}
	header := theme.Title.Render("tempo") + "   " + strings.Join(tabs, " · ")

	var body string
	switch m.active {
	case tabSessions:
		body = m.sessions.View()
	case tabStats:
		body = m.stats.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		header,
		theme.Pane.Width(max(m.width-4, 20)).Render(body),
		theme.Muted.Render("tab: switch   :: palette   q: quit"),
	)
	if m.palette.Visible() {
		view += "\n" + m.palette.View()
	}
	return theme.App.Render(view)
}

func (m Model) refreshActive() tea.Cmd {
	if m.active == tabStats {
		return m.stats.Reload()
	}
	return m.sessions.Reload()
}

// executePalette dispatches a palette command. Unknown commands are
// silently dropped; the palette hints enumerate the valid ones.
func (m *Model) executePalette(input string) tea.Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))

	switch fields[0] {
	case "start":
		tag := sessiondto.KeepTag()
		if arg != "" {
			tag = sessiondto.SetTag(arg)
		}
		return m.sessions.StartCmd(tag)
	case "stop":
		session, ok := m.activeSession()
		if !ok {
			return nil
		}
		experience := session.Experience
		if arg != "" {
			experience = arg
		}
		return m.sessions.StopCmd(session.ID, experience)
	case "tag":
		session, ok := m.sessions.Selected()
		if !ok || arg == "" {
			return nil
		}
		return m.sessions.RetagCmd(session, sessiondto.SetTag(arg))
	case "delete":
		session, ok := m.sessions.Selected()
		if !ok {
			return nil
		}
		return m.sessions.DeleteCmd(session)
	case "untag":
		session, ok := m.sessions.Selected()
		if !ok {
			return nil
		}
		return m.sessions.RetagCmd(session, sessiondto.ClearTag())
	case "period":
		return m.stats.SetPeriod(arg)
	}
	return nil
}

func (m Model) activeSession() (sessiondto.SessionOutput, bool) {
	session, ok := m.sessions.Selected()
	if ok && session.Status == "active" {
		return session, true
	}
	return sessiondto.SessionOutput{}, false
}
