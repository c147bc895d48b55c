// ABOUTME: Root bubbletea model for the dashboard screen
// ABOUTME: Fetches pending work, leave balances, and holidays in parallel and renders panels

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/Nirvasoft/A365SS/internal/client"
	"github.com/Nirvasoft/A365SS/internal/models"
	"github.com/Nirvasoft/A365SS/internal/store"
	"github.com/Nirvasoft/A365SS/internal/tui/styles"
)

const (
	minTerminalWidth = 80 // Below this the panels stack vertically
	maxPanelRows     = 6
	dateLayout       = "20060102"
)

// Backends bundles the clients the dashboard reads from.
type Backends struct {
	HXM  *client.HXM
	Main *client.Main
}

// loadedMsg is sent when the parallel fetch completes
type loadedMsg struct {
	requests  []models.Request
	approvals []models.Request
	leave     []models.LeaveSummaryItem
	holidays  []models.Holiday
	err       error
}

// Model is the dashboard's root bubbletea model
type Model struct {
	backends Backends
	session  store.Session
	spinner  spinner.Model
	loading  bool
	err      error
	width    int
	height   int
	data     loadedMsg
}

// New creates the dashboard model
func New(backends Backends, session store.Session) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Model{
		backends: backends,
		session:  session,
		spinner:  sp,
		loading:  true,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// load fetches the four panels concurrently
func (m *Model) load() tea.Cmd {
	backends := m.backends
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var msg loadedMsg
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			msg.requests, err = backends.HXM.Requests(ctx, models.StatusPending)
			return err
		})
		g.Go(func() error {
			to := time.Now().Format(dateLayout)
			from := time.Now().AddDate(0, 0, -30).Format(dateLayout)
			var err error
			msg.approvals, err = backends.HXM.Approvals(ctx, from, to, models.StatusPending)
			return err
		})
		g.Go(func() error {
			var err error
			msg.leave, err = backends.HXM.LeaveSummary(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.holidays, err = backends.Main.Holidays(ctx, time.Now().Year())
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.load())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.data = msg
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	title := "A365 Dashboard"
	if m.session.User != nil && m.session.User.Name != "" {
		title += "  " + styles.Subtitle.Render(m.session.User.Name)
	} else if m.session.UserID != "" {
		title += "  " + styles.Subtitle.Render(m.session.UserID)
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " Loading...\n")
	case m.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Error: "+m.err.Error()) + "\n")
	default:
		sb.WriteString(m.renderPanels())
	}

	sb.WriteString(styles.Help.Render(
		styles.KeyStyle.Render("r") + " refresh  " + styles.KeyStyle.Render("q") + " quit"))
	return sb.String()
}

// renderPanels lays the four panels out two-by-two, or stacked when the
// terminal is narrow
func (m *Model) renderPanels() string {
	panelWidth := m.width/2 - 4
	if m.width < minTerminalWidth {
		panelWidth = m.width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	requests := m.renderRequests(panelWidth)
	approvals := m.renderApprovals(panelWidth)
	leave := m.renderLeave(panelWidth)
	holidays := m.renderHolidays(panelWidth)

	if m.width < minTerminalWidth {
		return lipgloss.JoinVertical(lipgloss.Left, requests, approvals, leave, holidays) + "\n"
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, requests, approvals)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, leave, holidays)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom) + "\n"
}

func (m *Model) renderRequests(width int) string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(fmt.Sprintf("Pending Requests (%d)", len(m.data.requests))))
	sb.WriteString("\n")
	if len(m.data.requests) == 0 {
		sb.WriteString(styles.Subtitle.Render("none"))
	}
	for i, r := range m.data.requests {
		if i >= maxPanelRows {
			sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("... and %d more", len(m.data.requests)-i)))
			break
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", r.StartDate, r.RequestTypeDesc))
	}
	return styles.Panel.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) renderApprovals(width int) string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(fmt.Sprintf("Waiting on You (%d)", len(m.data.approvals))))
	sb.WriteString("\n")
	if len(m.data.approvals) == 0 {
		sb.WriteString(styles.Subtitle.Render("none"))
	}
	for i, r := range m.data.approvals {
		if i >= maxPanelRows {
			sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("... and %d more", len(m.data.approvals)-i)))
			break
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", r.Name, r.RequestTypeDesc))
	}
	return styles.Panel.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) renderLeave(width int) string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Leave Balance"))
	sb.WriteString("\n")
	if len(m.data.leave) == 0 {
		sb.WriteString(styles.Subtitle.Render("none"))
	}
	for i, item := range m.data.leave {
		if i >= maxPanelRows {
			break
		}
		style := styles.StatusOK
		if item.RemainingDays <= 1 {
			style = styles.StatusWarning
		}
		sb.WriteString(fmt.Sprintf("%-20s %s\n", item.LeaveType,
			style.Render(fmt.Sprintf("%.1f left", item.RemainingDays))))
	}
	return styles.Panel.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) renderHolidays(width int) string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Holidays"))
	sb.WriteString("\n")
	if len(m.data.holidays) == 0 {
		sb.WriteString(styles.Subtitle.Render("none"))
	}
	for i, h := range m.data.holidays {
		if i >= maxPanelRows {
			sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("... and %d more", len(m.data.holidays)-i)))
			break
		}
		sb.WriteString(fmt.Sprintf("%-12s %s\n", h.Date, h.HolidayName))
	}
	return styles.Panel.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

// Run starts the dashboard in the alternate screen
func Run(backends Backends, session store.Session) error {
	_, err := tea.NewProgram(New(backends, session), tea.WithAltScreen()).Run()
	return err
}
