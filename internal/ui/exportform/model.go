package exportform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/export"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// Date range presets. Only the custom preset filters client-side; the
// others are labels over the full fetched set.
const (
	rangeAll    = "all"
	rangeCustom = "custom"
)

// SubmitMsg carries the chosen export options.
type SubmitMsg struct {
	Format  export.Format
	Toggles export.Toggles
	Range   export.DateRange
	Filters api.ItemFilters
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	format      string
	completed   bool
	snoozed     bool
	subtasks    bool
	rangeChoice string
	customStart string
	customEnd   string
}

// Model is the export options form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	filters api.ItemFilters
	width   int
	height  int
}

// New creates a new export form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form. The filters echo the list view's
// server-side query and are recorded in the export document.
func (m *Model) Start(filters api.ItemFilters) tea.Cmd {
	m.filters = filters
	*m.fb = formBindings{
		format:      string(export.FormatCSV),
		completed:   true,
		snoozed:     true,
		subtasks:    true,
		rangeChoice: rangeAll,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the export form.
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

// View renders the export form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Export Items") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	main := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Format").
			Options(
				huh.NewOption("CSV", string(export.FormatCSV)),
				huh.NewOption("JSON", string(export.FormatJSON)),
			).
			Value(&m.fb.format),
		huh.NewConfirm().
			Title("Include completed items?").
			Value(&m.fb.completed),
		huh.NewConfirm().
			Title("Include snoozed items?").
			Value(&m.fb.snoozed),
		huh.NewConfirm().
			Title("Include subtasks?").
			Value(&m.fb.subtasks),
		huh.NewSelect[string]().
			Title("Date range").
			Options(
				huh.NewOption("Everything", rangeAll),
				huh.NewOption("Custom range...", rangeCustom),
			).
			Value(&m.fb.rangeChoice),
	)

	custom := huh.NewGroup(
		huh.NewInput().
			Title("From").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.customStart).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("To").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.customEnd).
			Validate(validateOptionalDate),
	).WithHideFunc(func() bool { return m.fb.rangeChoice != rangeCustom })

	return huh.NewForm(main, custom).
		WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		Format: export.Format(m.fb.format),
		Toggles: export.Toggles{
			IncludeCompleted: m.fb.completed,
			IncludeSnoozed:   m.fb.snoozed,
			IncludeSubtasks:  m.fb.subtasks,
		},
		Filters: m.filters,
	}

	if m.fb.rangeChoice == rangeCustom {
		msg.Range.Custom = true
		if t, err := parseDate(m.fb.customStart); err == nil {
			msg.Range.Start = &t
		}
		if t, err := parseDate(m.fb.customEnd); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			msg.Range.End = &end
		}
	}

	return func() tea.Msg { return msg }
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
