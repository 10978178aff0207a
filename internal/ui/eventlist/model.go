package eventlist

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// PageLoadedMsg is sent when a page of events has been fetched. Gen ties
// the response to the request that produced it.
type PageLoadedMsg struct {
	Gen  int
	Page *api.EventPage
	Err  error
}

// SelectedEventMsg is sent when the user opens an event's detail view.
type SelectedEventMsg struct {
	EventID int64
}

// NewEventMsg asks the parent to open the create form.
type NewEventMsg struct{}

// EditEventMsg asks the parent to open the edit form for an event.
type EditEventMsg struct {
	Event model.Event
}

// DeleteEventMsg asks the parent to delete an event.
type DeleteEventMsg struct {
	EventID int64
}

// Row wraps a model.Event so it can be used in a bubbles/list.
type Row struct {
	Event model.Event
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Event.Title }

// rowDelegate renders event rows.
type rowDelegate struct{}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }

func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	row, ok := li.(Row)
	if !ok {
		return
	}

	event := row.Event
	isSelected := index == m.Index()

	when := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(event.EventDateTime.Format("Jan 02 15:04"))

	recur := ""
	if event.IsRecurring {
		recur = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" ↻")
	}
	if event.MasterEventID != nil {
		recur = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" ↻")
	}

	location := ""
	if event.Location != nil && *event.Location != "" {
		location = theme.HelpStyle.Render(" @ " + *event.Location)
	}

	marker := "•"
	if event.IsUpcoming() {
		marker = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("•")
	}

	line := fmt.Sprintf(
		"%s %s %s%s%s",
		marker, when, event.Title, recur, location,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// Model is the paginated event list view.
type Model struct {
	list        list.Model
	client      *api.Client
	userID      int64
	keys        *keys.KeyMap
	filters     api.EventFilters
	gen         int
	totalEvents int64
	totalPages  int
	errText     string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates an event list for the given user.
func New(
	client *api.Client,
	userID int64,
	k *keys.KeyMap,
	pageSize, width, height int,
) Model {
	l := list.New([]list.Item{}, rowDelegate{}, width, height-3)
	l.Title = "Events"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search events..."
	si.Prompt = "/ "
	si.Width = width - 4

	if pageSize <= 0 {
		pageSize = 20
	}

	return Model{
		list:   l,
		client: client,
		userID: userID,
		keys:   k,
		filters: api.EventFilters{
			Size:          pageSize,
			SortBy:        "eventDateTime",
			SortDirection: "asc",
			Upcoming:      true,
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the first page.
func (m *Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload starts a fresh fetch of the current page.
func (m *Model) Reload() tea.Cmd {
	m.gen++
	gen := m.gen
	filters := m.filters
	client := m.client
	userID := m.userID

	return func() tea.Msg {
		page, err := client.GetEvents(context.Background(), userID, filters)
		if err != nil {
			return PageLoadedMsg{Gen: gen, Err: err}
		}
		return PageLoadedMsg{Gen: gen, Page: page}
	}
}

// Update handles messages for the event list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			m.errText = api.ErrorMessage(msg.Err)
			return m, nil
		}
		m.errText = ""
		m.totalEvents = msg.Page.TotalElements
		m.totalPages = msg.Page.TotalPages
		rows := make([]list.Item, len(msg.Page.Content))
		for i, event := range msg.Page.Content {
			rows[i] = Row{Event: event}
		}
		return m, m.list.SetItems(rows)

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filters.Search = m.searchInput.Value()
		m.filters.Page = 0
		return m, m.Reload()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filters.Search = ""
		m.filters.Page = 0
		return m, m.Reload()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		row, ok := m.list.SelectedItem().(Row)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedEventMsg{EventID: row.Event.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Reload()

	case key.Matches(msg, m.keys.NextPage):
		if m.filters.Page+1 < m.totalPages {
			m.filters.Page++
			return m, m.Reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.filters.Page > 0 {
			m.filters.Page--
			return m, m.Reload()
		}
		return m, nil

	case msg.String() == "u":
		m.filters.Upcoming = !m.filters.Upcoming
		m.filters.Page = 0
		return m, m.Reload()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewEventMsg{} }

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.list.SelectedItem().(Row)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditEventMsg{Event: row.Event} }

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.list.SelectedItem().(Row)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DeleteEventMsg{EventID: row.Event.ID}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SearchActive reports whether the search input currently has focus.
func (m Model) SearchActive() bool {
	return m.searchMode
}

// View renders the event list view.
func (m Model) View() string {
	var top string
	if m.searchMode {
		top = lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = m.renderEmptyState()
	}

	footer := m.renderFooter()

	if top != "" {
		return lipgloss.JoinVertical(lipgloss.Left, top, body, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) renderFooter() string {
	scope := "all"
	if m.filters.Upcoming {
		scope = "upcoming"
	}

	pageInfo := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf(
			"%s · page %d/%d · %d events",
			scope, m.filters.Page+1, maxInt(m.totalPages, 1), m.totalEvents,
		))

	errInfo := ""
	if m.errText != "" {
		errInfo = theme.ErrorStyle.Render(" · " + m.errText)
	}

	return pageInfo + errInfo
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.errText != "" {
		return style.Render("Could not load events.\n" + m.errText)
	}
	if m.filters.Upcoming {
		return style.Render("No upcoming events.\n\nPress u to show all, n to create one.")
	}
	return style.Render("No events yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
