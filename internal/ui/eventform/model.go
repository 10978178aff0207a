package eventform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// SubmitMsg is dispatched when the form is submitted. EventID is set
// only in edit mode.
type SubmitMsg struct {
	Edit    bool
	EventID int64
	Request api.EventRequest
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	date        string
	timeOfDay   string
	location    string
	reminder    string
	categoryID  string
	isRecurring bool
	pattern     model.RecurringPattern
	interval    string
	endDate     string
}

// Model is the Bubble Tea model for the event create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editMode   bool
	editID     int64
	categories []model.Category
	width      int
	height     int
}

// New creates a new event form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{pattern: model.RecurDaily},
		width:  width,
		height: height,
	}
}

// SetCategories sets the available categories for the selector.
func (m *Model) SetCategories(categories []model.Category) {
	m.categories = categories
}

// StartCreate initializes the form for creating a new event.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	*m.fb = formBindings{pattern: model.RecurDaily}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing event.
func (m *Model) StartEdit(event model.Event) tea.Cmd {
	m.editMode = true
	m.editID = event.ID

	fb := formBindings{
		title:       event.Title,
		date:        event.EventDateTime.Format("2006-01-02"),
		timeOfDay:   event.EventDateTime.Format("15:04"),
		isRecurring: event.IsRecurring,
		pattern:     model.RecurDaily,
	}
	if event.Description != nil {
		fb.description = *event.Description
	}
	if event.Location != nil {
		fb.location = *event.Location
	}
	if event.ReminderMinutes != nil {
		fb.reminder = strconv.Itoa(*event.ReminderMinutes)
	}
	if event.CategoryID != nil {
		fb.categoryID = strconv.FormatInt(*event.CategoryID, 10)
	}
	if event.RecurringPattern != nil {
		fb.pattern = *event.RecurringPattern
	}
	if event.RecurringInterval != nil {
		fb.interval = strconv.Itoa(*event.RecurringInterval)
	}
	if event.RecurringEndDate != nil {
		fb.endDate = event.RecurringEndDate.Format("2006-01-02")
	}
	*m.fb = fb

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the event form.
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

// View renders the event form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Event"
	if m.editMode {
		titleText = "Edit Event"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

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
	patternOpts := make(
		[]huh.Option[model.RecurringPattern], len(model.RecurringPatterns),
	)
	for i, p := range model.RecurringPatterns {
		patternOpts[i] = huh.NewOption(p.Label(), p)
	}

	catOpts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range m.categories {
		catOpts = append(catOpts, huh.NewOption(
			c.Name, strconv.FormatInt(c.ID, 10),
		))
	}

	main := huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("What is happening?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(validateDate),
		huh.NewInput().
			Title("Time").
			Placeholder("HH:MM").
			Value(&m.fb.timeOfDay).
			Validate(validateTime),
		huh.NewInput().
			Title("Location").
			Placeholder("optional").
			Value(&m.fb.location),
		huh.NewInput().
			Title("Reminder Minutes").
			Placeholder("optional, e.g. 30").
			Value(&m.fb.reminder).
			Validate(validateOptionalMin(0)),
		huh.NewSelect[string]().
			Title("Category").
			Options(catOpts...).
			Value(&m.fb.categoryID),
		huh.NewConfirm().
			Title("Recurring?").
			Value(&m.fb.isRecurring),
	)

	// Recurrence fields are shown only when the event repeats.
	recurrence := huh.NewGroup(
		huh.NewSelect[model.RecurringPattern]().
			Title("Pattern").
			Options(patternOpts...).
			Value(&m.fb.pattern),
		huh.NewInput().
			Title("Interval").
			Placeholder("every N days/weeks, at least 1").
			Value(&m.fb.interval).
			Validate(validateOptionalMin(1)),
		huh.NewInput().
			Title("Repeat Until").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.endDate).
			Validate(validateOptionalDate),
	).WithHideFunc(func() bool { return !m.fb.isRecurring })

	return huh.NewForm(main, recurrence).
		WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit shapes the form values into a request. Recurrence fields
// are sent only when the event repeats.
func (m Model) handleSubmit() tea.Cmd {
	when, err := time.ParseInLocation(
		"2006-01-02 15:04",
		strings.TrimSpace(m.fb.date)+" "+strings.TrimSpace(m.fb.timeOfDay),
		time.Local,
	)
	if err != nil {
		return func() tea.Msg { return CancelMsg{} }
	}

	req := api.EventRequest{
		Title:         strings.TrimSpace(m.fb.title),
		EventDateTime: when.Format(time.RFC3339),
		IsRecurring:   m.fb.isRecurring,
	}

	if desc := strings.TrimSpace(m.fb.description); desc != "" {
		req.Description = &desc
	}
	if loc := strings.TrimSpace(m.fb.location); loc != "" {
		req.Location = &loc
	}
	if rem := strings.TrimSpace(m.fb.reminder); rem != "" {
		if n, err := strconv.Atoi(rem); err == nil {
			req.ReminderMinutes = &n
		}
	}
	if m.fb.categoryID != "" {
		if id, err := strconv.ParseInt(m.fb.categoryID, 10, 64); err == nil {
			req.CategoryID = &id
		}
	}

	if m.fb.isRecurring {
		pattern := m.fb.pattern
		req.RecurringPattern = &pattern

		if pattern.NeedsInterval() {
			interval := 1
			if s := strings.TrimSpace(m.fb.interval); s != "" {
				if n, err := strconv.Atoi(s); err == nil {
					interval = n
				}
			}
			req.RecurringInterval = &interval
		}

		if end := strings.TrimSpace(m.fb.endDate); end != "" {
			if t, err := time.ParseInLocation("2006-01-02", end, time.Local); err == nil {
				s := t.Format("2006-01-02")
				req.RecurringEndDate = &s
			}
		}
	}

	edit := m.editMode
	editID := m.editID
	return func() tea.Msg {
		return SubmitMsg{Edit: edit, EventID: editID, Request: req}
	}
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return validateDate(s)
}

func validateTime(s string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

func validateOptionalMin(minValue int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if n < minValue {
			return fmt.Errorf("must be at least %d", minValue)
		}
		return nil
	}
}
