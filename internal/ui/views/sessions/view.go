package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "tempo/internal/modules/session/dto"
	"tempo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Start(ctx context.Context, tag sessiondto.TagUpdate) (sessiondto.SessionOutput, error)
	Stop(ctx context.Context, sessionID, experience string, tag sessiondto.TagUpdate) (sessiondto.SessionOutput, error)
	Update(ctx context.Context, sessionID, experience string, tag sessiondto.TagUpdate) (sessiondto.SessionOutput, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	ListAll(ctx context.Context) ([]sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Err      error
}

type MutatedMsg struct {
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session sessiondto.SessionOutput
}

func (i sessionItem) Title() string {
	title := fmt.Sprintf("#%d  %s", i.session.Number, i.session.StartedAt.Format("Mon 02 Jan 15:04"))
	if i.session.Tag != "" {
		title += "  [" + i.session.Tag + "]"
	}
	return title
}

func (i sessionItem) Description() string {
	if i.session.Status == "active" {
		return "running"
	}
	d := (time.Duration(i.session.DurationMS) * time.Millisecond).Round(time.Second)
	if i.session.Experience != "" {
		return fmt.Sprintf("%s — %s", d, i.session.Experience)
	}
	return d.String()
}

func (i sessionItem) FilterValue() string { return i.session.Tag + " " + i.session.Experience }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   SessionPort
	list   list.Model
	status string
	width  int
	height int
}

func New(port SessionPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sessions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)

	case LoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		m.status = ""
		return m, m.list.SetItems(items)

	case MutatedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		}
		return m, m.Reload()

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "s":
			return m, m.startCmd(sessiondto.KeepTag())
		case "x":
			return m, m.stopSelectedCmd()
		case "d":
			return m, m.deleteSelectedCmd()
		case "r":
			return m, m.Reload()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	view := m.list.View()
	if m.status != "" {
		view += "\n" + theme.Danger.Render(m.status)
	}
	return view
}

// Selected returns the highlighted session and whether there is one.
func (m Model) Selected() (sessiondto.SessionOutput, bool) {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		return sessiondto.SessionOutput{}, false
	}
	return item.session, true
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.ListAll(context.Background())
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) StartCmd(tag sessiondto.TagUpdate) tea.Cmd {
	return m.startCmd(tag)
}

func (m Model) startCmd(tag sessiondto.TagUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Start(context.Background(), tag)
		return MutatedMsg{Err: err}
	}
}

// StopCmd completes the session with a final reflection.
func (m Model) StopCmd(sessionID, experience string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Stop(context.Background(), sessionID, experience, sessiondto.KeepTag())
		return MutatedMsg{Err: err}
	}
}

// RetagCmd rewrites the selected session's tag, preserving its reflection.
func (m Model) RetagCmd(session sessiondto.SessionOutput, tag sessiondto.TagUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Update(context.Background(), session.ID, session.Experience, tag)
		return MutatedMsg{Err: err}
	}
}

// DeleteCmd removes the session and triggers a reload.
func (m Model) DeleteCmd(session sessiondto.SessionOutput) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Delete(context.Background(), session.ID)
		return MutatedMsg{Err: err}
	}
}

func (m Model) stopSelectedCmd() tea.Cmd {
	session, ok := m.Selected()
	if !ok || session.Status != "active" {
		return nil
	}
	return m.StopCmd(session.ID, session.Experience)
}

func (m Model) deleteSelectedCmd() tea.Cmd {
	session, ok := m.Selected()
	if !ok {
		return nil
	}
	return m.DeleteCmd(session)
}
