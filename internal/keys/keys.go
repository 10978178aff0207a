package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Paging
	NextPage key.Binding
	PrevPage key.Binding

	// Selection
	Select key.Binding
	Mark   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Type filters
	FilterTasks     key.Binding
	FilterHabits    key.Binding
	FilterReminders key.Binding

	// Item actions
	New      key.Binding
	Edit     key.Binding
	Complete key.Binding
	Snooze   key.Binding
	Delete   key.Binding
	Export   key.Binding

	// Views
	Dashboard  key.Binding
	Events     key.Binding
	Categories key.Binding

	// Sort
	CycleSort key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev page"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark for bulk action"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		FilterTasks: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle tasks"),
		),
		FilterHabits: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle habits"),
		),
		FilterReminders: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "toggle reminders"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new item"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "snooze"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Export: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "export"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		Events: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "events"),
		),
		Categories: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "categories"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.Select, k.Back, k.Quit},
		{k.Search, k.Command, k.Help, k.Refresh, k.CycleSort},
		{k.FilterTasks, k.FilterHabits, k.FilterReminders, k.Mark},
		{k.New, k.Edit, k.Complete, k.Snooze, k.Delete, k.Export},
		{k.Dashboard, k.Events, k.Categories},
	}
}
