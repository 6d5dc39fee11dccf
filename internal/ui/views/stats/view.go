package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "tempo/internal/modules/analytics/dto"
	"tempo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AnalyticsPort interface {
	Aggregate(ctx context.Context, period string) (analyticsdto.SnapshotOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SnapshotMsg struct {
	Snapshot analyticsdto.SnapshotOutput
	Err      error
}

var periods = []string{"day", "month", "year", "all"}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      AnalyticsPort
	snapshot  analyticsdto.SnapshotOutput
	periodIdx int
	err       error
	width     int
	height    int
}

func New(port AnalyticsPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Period() string {
	return periods[m.periodIdx]
}

// SetPeriod switches the window when the name is valid; unknown names are
// ignored rather than surfaced.
func (m *Model) SetPeriod(period string) tea.Cmd {
	for i, p := range periods {
		if p == period {
			m.periodIdx = i
			return m.Reload()
		}
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SnapshotMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.snapshot = msg.Snapshot
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			m.periodIdx = (m.periodIdx + 1) % len(periods)
			return m, m.Reload()
		case "r":
			return m, m.Reload()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	header := fmt.Sprintf("Stats — %s  (%d sessions, %.1f tagged min)", m.Period(), m.snapshot.SessionCount, m.snapshot.TotalMinutes)
	sb.WriteString(theme.Title.Render(header) + "\n")
	sb.WriteString(theme.Muted.Render("p: cycle period   r: refresh") + "\n\n")
	if m.err != nil {
		sb.WriteString(theme.Danger.Render(m.err.Error()) + "\n")
		return sb.String()
	}

	sb.WriteString(m.hourChart())
	sb.WriteString("\n")
	sb.WriteString(m.tagTable())
	return sb.String()
}

func (m Model) Reload() tea.Cmd {
	period := m.Period()
	return func() tea.Msg {
		snapshot, err := m.port.Aggregate(context.Background(), period)
		return SnapshotMsg{Snapshot: snapshot, Err: err}
	}
}

// hourChart renders one bar per non-empty hour bucket, scaled to the
// busiest hour.
func (m Model) hourChart() string {
	var peak float64
	for _, minutes := range m.snapshot.Hours {
		if minutes > peak {
			peak = minutes
		}
	}
	if peak == 0 {
		return theme.Muted.Render("no completed sessions in this period") + "\n"
	}
	maxBar := m.width - 24
	if maxBar < 10 {
		maxBar = 10
	}
	var sb strings.Builder
	for hour, minutes := range m.snapshot.Hours {
		if minutes == 0 {
			continue
		}
		width := int(minutes / peak * float64(maxBar))
		if width < 1 {
			width = 1
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			theme.BarLabel.Render(fmt.Sprintf("%02d:00", hour)),
			theme.Bar.Render(strings.Repeat("█", width)),
			theme.Muted.Render(fmt.Sprintf(" %.1f min", minutes)),
		))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) tagTable() string {
	if len(m.snapshot.Tags) == 0 {
		return theme.Muted.Render("no tagged sessions") + "\n"
	}
	var sb strings.Builder
	for _, share := range m.snapshot.Tags {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			theme.Good.Render(fmt.Sprintf("%-16s", share.Tag)),
			theme.Muted.Render(fmt.Sprintf("%8.1f min  %5.1f%%", share.Minutes, share.Percent)),
		))
	}
	return sb.String()
}
