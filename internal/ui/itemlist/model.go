package itemlist

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/store"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// PageLoadedMsg is sent when a page of items has been fetched. Gen ties
// the response to the request that produced it; responses from an older
// generation are dropped so a slow fetch cannot overwrite newer results.
type PageLoadedMsg struct {
	Gen       int
	Page      *api.ItemPage
	FromCache bool
	FetchedAt time.Time
	Err       error
}

// SelectedItemMsg is sent when the user opens an item's detail view.
type SelectedItemMsg struct {
	ItemID int64
}

// NewItemMsg asks the parent to open the create form.
type NewItemMsg struct{}

// EditItemMsg asks the parent to open the edit form for an item.
type EditItemMsg struct {
	Item model.Item
}

// CompleteRequestMsg asks the parent to complete the given items.
type CompleteRequestMsg struct {
	ItemIDs []int64
}

// SnoozeRequestMsg asks the parent to open the snooze picker for the
// given items.
type SnoozeRequestMsg struct {
	ItemIDs []int64
}

// DeleteRequestMsg asks the parent to delete the given items.
type DeleteRequestMsg struct {
	ItemIDs []int64
}

// ExportRequestMsg asks the parent to open the export form with the
// current server-side filters.
type ExportRequestMsg struct {
	Filters api.ItemFilters
}

// sortMode pairs a backend sort key with its natural direction.
type sortMode struct {
	key       string
	direction string
}

// sortModes defines the sort orders cycled by Tab.
var sortModes = []sortMode{
	{"updatedAt", "desc"},
	{"priority", "desc"},
	{"dueDate", "asc"},
	{"title", "asc"},
	{"createdAt", "desc"},
}

// Model is the paginated item list view.
type Model struct {
	list        list.Model
	client      *api.Client
	cache       store.Store
	userID      int64
	keys        *keys.KeyMap
	filters     api.ItemFilters
	typeFilters map[model.ItemType]bool
	marked      map[int64]bool
	sortIndex   int
	gen         int
	totalItems  int64
	totalPages  int
	fromCache   bool
	cacheTime   time.Time
	errText     string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates an item list for the given user.
func New(
	client *api.Client,
	cache store.Store,
	userID int64,
	k *keys.KeyMap,
	pageSize, width, height int,
) Model {
	marked := make(map[int64]bool)

	l := list.New([]list.Item{}, rowDelegate{marked: marked}, width, height-3)
	l.Title = "Items"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search items..."
	si.Prompt = "/ "
	si.Width = width - 4

	if pageSize <= 0 {
		pageSize = 20
	}

	return Model{
		list:   l,
		client: client,
		cache:  cache,
		userID: userID,
		keys:   k,
		filters: api.ItemFilters{
			Size:          pageSize,
			SortBy:        sortModes[0].key,
			SortDirection: sortModes[0].direction,
		},
		typeFilters: make(map[model.ItemType]bool),
		marked:      marked,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the first page.
func (m *Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload starts a fresh fetch of the current page. Any in-flight fetch
// from an earlier call is invalidated.
func (m *Model) Reload() tea.Cmd {
	m.gen++
	gen := m.gen
	filters := m.filters
	client := m.client
	cache := m.cache
	userID := m.userID

	return func() tea.Msg {
		page, err := client.GetItems(context.Background(), userID, filters)
		if err == nil {
			return PageLoadedMsg{Gen: gen, Page: page}
		}

		if api.IsUnreachable(err) && cache != nil {
			items, cacheErr := cache.CachedItems(
				context.Background(), userID, filters,
			)
			if cacheErr == nil && len(items) > 0 {
				fetchedAt, _ := cache.LastFetched(context.Background(), userID)
				return PageLoadedMsg{
					Gen: gen,
					Page: &api.ItemPage{
						Content:       items,
						TotalElements: int64(len(items)),
						TotalPages:    1,
					},
					FromCache: true,
					FetchedAt: fetchedAt,
				}
			}
		}

		return PageLoadedMsg{Gen: gen, Err: err}
	}
}

// Filters returns the current server-side filter state.
func (m Model) Filters() api.ItemFilters {
	return m.filters
}

// Items returns the currently displayed page contents.
func (m Model) Items() []model.Item {
	rows := m.list.Items()
	items := make([]model.Item, 0, len(rows))
	for _, r := range rows {
		if row, ok := r.(Row); ok {
			items = append(items, row.Item)
		}
	}
	return items
}

// ClearMarks drops the bulk selection, typically after a bulk action.
func (m *Model) ClearMarks() {
	for id := range m.marked {
		delete(m.marked, id)
	}
}

// SearchActive reports whether the search input currently has focus.
func (m Model) SearchActive() bool {
	return m.searchMode
}

// Update handles messages for the item list view.
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
		m.fromCache = msg.FromCache
		m.cacheTime = msg.FetchedAt
		m.totalItems = msg.Page.TotalElements
		m.totalPages = msg.Page.TotalPages
		rows := make([]list.Item, len(msg.Page.Content))
		for i, item := range msg.Page.Content {
			rows[i] = Row{Item: item}
		}
		cmd := m.list.SetItems(rows)

		// Cache the fresh page for offline fallback.
		var cacheCmd tea.Cmd
		if !msg.FromCache && m.cache != nil && len(msg.Page.Content) > 0 {
			items := msg.Page.Content
			cache := m.cache
			userID := m.userID
			cacheCmd = func() tea.Msg {
				_ = cache.UpsertItems(context.Background(), userID, items)
				return nil
			}
		}
		return m, tea.Batch(cmd, cacheCmd)

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

// handleSearchKeys processes key input while in search mode.
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

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		row, ok := m.list.SelectedItem().(Row)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedItemMsg{ItemID: row.Item.ID}
		}

	case key.Matches(msg, m.keys.Mark):
		row, ok := m.list.SelectedItem().(Row)
		if !ok {
			return m, nil
		}
		if m.marked[row.Item.ID] {
			delete(m.marked, row.Item.ID)
		} else {
			m.marked[row.Item.ID] = true
		}
		m.list.CursorDown()
		return m, nil

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

	case key.Matches(msg, m.keys.FilterTasks):
		m.toggleTypeFilter(model.ItemTypeTask)
		return m, m.Reload()

	case key.Matches(msg, m.keys.FilterHabits):
		m.toggleTypeFilter(model.ItemTypeHabit)
		return m, m.Reload()

	case key.Matches(msg, m.keys.FilterReminders):
		m.toggleTypeFilter(model.ItemTypeReminder)
		return m, m.Reload()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filters.SortBy = sortModes[m.sortIndex].key
		m.filters.SortDirection = sortModes[m.sortIndex].direction
		m.filters.Page = 0
		return m, m.Reload()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewItemMsg{} }

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.list.SelectedItem().(Row)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditItemMsg{Item: row.Item} }

	case key.Matches(msg, m.keys.Complete):
		ids := m.targetIDs()
		if len(ids) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return CompleteRequestMsg{ItemIDs: ids} }

	case key.Matches(msg, m.keys.Snooze):
		ids := m.targetIDs()
		if len(ids) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return SnoozeRequestMsg{ItemIDs: ids} }

	case key.Matches(msg, m.keys.Delete):
		ids := m.targetIDs()
		if len(ids) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return DeleteRequestMsg{ItemIDs: ids} }

	case key.Matches(msg, m.keys.Export):
		filters := m.filters
		return m, func() tea.Msg { return ExportRequestMsg{Filters: filters} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// targetIDs returns the marked items, or the selected item when nothing
// is marked.
func (m Model) targetIDs() []int64 {
	if len(m.marked) > 0 {
		ids := make([]int64, 0, len(m.marked))
		for id := range m.marked {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return ids
	}
	row, ok := m.list.SelectedItem().(Row)
	if !ok {
		return nil
	}
	return []int64{row.Item.ID}
}

// toggleTypeFilter toggles a type filter on or off. If exactly one type
// is active it is applied; otherwise all types are shown.
func (m *Model) toggleTypeFilter(t model.ItemType) {
	if m.typeFilters[t] {
		delete(m.typeFilters, t)
	} else {
		m.typeFilters[t] = true
	}

	var active []model.ItemType
	for t, on := range m.typeFilters {
		if on {
			active = append(active, t)
		}
	}

	if len(active) == 1 {
		t := active[0]
		m.filters.Type = &t
	} else {
		m.filters.Type = nil
	}
	m.filters.Page = 0
}

// View renders the item list view.
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

// renderFooter builds the pagination and staleness line.
func (m Model) renderFooter() string {
	pageInfo := ""
	if m.totalPages > 0 {
		pageInfo = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(fmt.Sprintf(
				"page %d/%d · %d items",
				m.filters.Page+1, m.totalPages, m.totalItems,
			))
	}

	markedInfo := ""
	if len(m.marked) > 0 {
		markedInfo = theme.MarkedItemStyle.Render(
			fmt.Sprintf(" · %d marked", len(m.marked)),
		)
	}

	staleInfo := ""
	if m.fromCache {
		stale := " · offline cache"
		if !m.cacheTime.IsZero() {
			stale += " from " + m.cacheTime.Format("Jan 2 15:04")
		}
		staleInfo = theme.StaleStyle.Render(stale)
	}

	errInfo := ""
	if m.errText != "" {
		errInfo = theme.ErrorStyle.Render(" · " + m.errText)
	}

	return pageInfo + markedInfo + staleInfo + errInfo
}

// renderEmptyState shows guidance text when no items match.
func (m Model) renderEmptyState() string {
	hasFilters := m.filters.Type != nil ||
		m.filters.Status != nil ||
		m.filters.Priority != nil ||
		m.filters.Search != ""

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.errText != "" {
		return style.Render("Could not load items.\n" + m.errText)
	}
	if hasFilters {
		return style.Render("No matching items.\nTry adjusting your filters.")
	}
	return style.Render("No items yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}
