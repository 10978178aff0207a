package eventdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/schedule"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// BackMsg signals the parent to navigate back to the event list.
type BackMsg struct{}

// LoadedMsg carries the loaded event.
type LoadedMsg struct {
	Event *model.Event
	Err   error
}

// ActionMsg signals the parent to run an action on the current event.
type ActionMsg struct {
	Action  string
	EventID int64
}

// Model is the event detail view component.
type Model struct {
	event    *model.Event
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
	errText  string
}

// New creates a new event detail model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the event detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the event detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.event = msg.Event
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Edit):
			if m.event != nil {
				id := m.event.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "edit", EventID: id}
				}
			}

		case key.Matches(msg, m.keys.Delete):
			if m.event != nil {
				id := m.event.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "delete", EventID: id}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the event detail view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return centered.Render("Loading event...")
	}
	if m.errText != "" {
		return centered.Render("Could not load event.\n" + m.errText)
	}
	if m.event == nil {
		return centered.Render("No event selected")
	}

	return m.viewport.View()
}

// Event returns the displayed event, or nil.
func (m Model) Event() *model.Event {
	return m.event
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.event == nil {
		return ""
	}

	event := m.event
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(
		fmt.Sprintf("#%d  %s", event.EventNumber, event.Title),
	))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	metaLine := func(label, value string) string {
		return fmt.Sprintf("%s %s", metaStyle.Render(label), valStyle.Render(value))
	}

	sections = append(sections, metaLine(
		"When:    ", event.EventDateTime.Format("Mon, Jan 2 2006 at 15:04"),
	))
	if event.Location != nil && *event.Location != "" {
		sections = append(sections, metaLine("Where:   ", *event.Location))
	}
	if event.CategoryName != nil {
		sections = append(sections, metaLine("Category:", *event.CategoryName))
	}

	reminder := 0
	if event.ReminderMinutes != nil {
		reminder = *event.ReminderMinutes
	}
	sections = append(sections, metaLine(
		"Reminder:", schedule.DescribeReminder(reminder),
	))

	if event.IsRecurring && event.RecurringPattern != nil {
		interval := 1
		if event.RecurringInterval != nil {
			interval = *event.RecurringInterval
		}
		recurrence := schedule.DescribeRecurrence(*event.RecurringPattern, interval)
		if event.RecurringEndDate != nil {
			recurrence += " until " + event.RecurringEndDate.Format("2006-01-02")
		}
		sections = append(sections, metaLine("Repeats: ", recurrence))
	}
	if event.MasterEventID != nil {
		sections = append(sections, theme.HelpStyle.Render(
			"generated from a recurring event",
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", minInt(m.width-4, 80)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)
	sections = append(sections, descHeaderStyle.Render("Description"))
	if event.Description != nil && *event.Description != "" {
		sections = append(sections, *event.Description)
	} else {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
