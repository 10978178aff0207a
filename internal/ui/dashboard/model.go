package dashboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// recentSize is the number of items sampled for the status breakdown.
// The breakdown counts only this page, while the total comes from the
// page metadata, so the two can disagree on busy accounts.
const recentSize = 5

// LoadedMsg carries the fetched dashboard data.
type LoadedMsg struct {
	Page    *api.ItemPage
	Overdue []model.Item
	Events  []model.Event
	Err     error
}

// OpenListMsg asks the parent to switch to the item list.
type OpenListMsg struct{}

// OpenEventsMsg asks the parent to switch to the event list.
type OpenEventsMsg struct{}

// Model is the dashboard view: item totals, a recent-page status
// breakdown, overdue items, and upcoming events.
type Model struct {
	client  *api.Client
	userID  int64
	keys    *keys.KeyMap
	total   int64
	recent  []model.Item
	overdue []model.Item
	events  []model.Event
	errText string
	loading bool
	width   int
	height  int
}

// New creates a dashboard for the given user.
func New(client *api.Client, userID int64, k *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		userID: userID,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the dashboard data.
func (m *Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the dashboard data.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	client := m.client
	userID := m.userID

	return func() tea.Msg {
		ctx := context.Background()

		page, err := client.GetItems(ctx, userID, api.ItemFilters{
			Size:          recentSize,
			SortBy:        "updatedAt",
			SortDirection: "desc",
		})
		if err != nil {
			return LoadedMsg{Err: err}
		}

		overdue, err := client.GetOverdueItems(ctx, userID)
		if err != nil {
			return LoadedMsg{Err: err}
		}

		events, err := client.GetUpcomingEvents(ctx, userID, recentSize)
		if err != nil {
			return LoadedMsg{Err: err}
		}

		return LoadedMsg{Page: page, Overdue: overdue, Events: events}
	}
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = api.ErrorMessage(msg.Err)
			return m, nil
		}
		m.errText = ""
		m.total = msg.Page.TotalElements
		m.recent = msg.Page.Content
		m.overdue = msg.Overdue
		m.events = msg.Events
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m, m.Reload()
		case key.Matches(msg, m.keys.Select):
			return m, func() tea.Msg { return OpenListMsg{} }
		case key.Matches(msg, m.keys.Events):
			return m, func() tea.Msg { return OpenEventsMsg{} }
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return centered.Render("Loading dashboard...")
	}
	if m.errText != "" {
		return centered.Render("Could not load dashboard.\n" + m.errText)
	}

	var sections []string

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	sections = append(sections, theme.HeaderStyle.Render("Dashboard"), "")

	// Status breakdown over the recent page.
	counts := make(map[model.ItemStatus]int)
	for _, item := range m.recent {
		counts[item.Status]++
	}

	statLine := fmt.Sprintf("%d items total", m.total)
	sections = append(sections, headerStyle.Render(statLine))

	var badges []string
	for _, status := range model.ItemStatuses {
		badges = append(badges, theme.StatusStyle(status).Render(
			fmt.Sprintf("%s %d", status.Label(), counts[status]),
		))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	sections = append(sections, theme.HelpStyle.Render(
		fmt.Sprintf("status counts cover the %d most recent items", len(m.recent)),
	))
	sections = append(sections, "")

	// Overdue items.
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Overdue (%d)", len(m.overdue)),
	))
	if len(m.overdue) == 0 {
		sections = append(sections, theme.HelpStyle.Render("Nothing overdue."))
	}
	for i, item := range m.overdue {
		if i >= recentSize {
			sections = append(sections, theme.HelpStyle.Render("..."))
			break
		}
		line := fmt.Sprintf(
			"%s #%d %s",
			theme.ErrorStyle.Render("!"),
			item.ItemNumber,
			item.Title,
		)
		if item.DueDate != nil {
			line += " " + theme.HelpStyle.Render("due "+item.DueDate.Format("Jan 02"))
		}
		sections = append(sections, line)
	}
	sections = append(sections, "")

	// Upcoming events.
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Upcoming Events (%d)", len(m.events)),
	))
	if len(m.events) == 0 {
		sections = append(sections, theme.HelpStyle.Render("No upcoming events."))
	}
	for _, event := range m.events {
		sections = append(sections, fmt.Sprintf(
			"• %s %s",
			event.EventDateTime.Format("Jan 02 15:04"),
			event.Title,
		))
	}
	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render(
		"enter items · v events · r refresh",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
