package snoozeform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/schedule"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// customChoice is the select value that reveals the custom time input.
const customChoice = "custom"

// SubmitMsg carries the chosen wake timestamp for the targeted items.
type SubmitMsg struct {
	ItemIDs []int64
	Until   string
}

// CancelMsg is dispatched when the user cancels the picker.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	choice string
	custom string
}

// Model is the snooze duration picker.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	itemIDs []int64
	width   int
	height  int
}

// New creates a new snooze picker model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{choice: string(schedule.Snooze1Day)},
		width:  width,
		height: height,
	}
}

// Start initializes the picker for the given items.
func (m *Model) Start(itemIDs []int64) tea.Cmd {
	m.itemIDs = itemIDs
	*m.fb = formBindings{choice: string(schedule.Snooze1Day)}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the snooze picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the snooze picker.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "Snooze Item"
	if len(m.itemIDs) > 1 {
		title = fmt.Sprintf("Snooze %d Items", len(m.itemIDs))
	}

	content := titleStyle.Render(title) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(schedule.SnoozeTokens)+1)
	for _, t := range schedule.SnoozeTokens {
		opts = append(opts, huh.NewOption(t.Label(), string(t)))
	}
	opts = append(opts, huh.NewOption("Custom...", customChoice))

	main := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Snooze for").
			Options(opts...).
			Value(&m.fb.choice),
	)

	custom := huh.NewGroup(
		huh.NewInput().
			Title("Wake At").
			Placeholder("YYYY-MM-DD HH:MM").
			Value(&m.fb.custom).
			Validate(validateFutureTime),
	).WithHideFunc(func() bool { return m.fb.choice != customChoice })

	return huh.NewForm(main, custom)
}

func (m Model) handleSubmit() tea.Cmd {
	var until string
	if m.fb.choice == customChoice {
		target, err := parseCustomTime(m.fb.custom)
		if err != nil {
			return func() tea.Msg { return CancelMsg{} }
		}
		until, err = schedule.SnoozeUntilCustom(time.Now(), target)
		if err != nil {
			return func() tea.Msg { return CancelMsg{} }
		}
	} else {
		until = schedule.SnoozeUntil(time.Now(), schedule.SnoozeToken(m.fb.choice))
	}

	ids := m.itemIDs
	return func() tea.Msg {
		return SubmitMsg{ItemIDs: ids, Until: until}
	}
}

func parseCustomTime(s string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04", strings.TrimSpace(s), time.Local,
	)
}

func validateFutureTime(s string) error {
	target, err := parseCustomTime(s)
	if err != nil {
		return fmt.Errorf("invalid time, use YYYY-MM-DD HH:MM")
	}
	if _, err := schedule.SnoozeUntilCustom(time.Now(), target); err != nil {
		return err
	}
	return nil
}
