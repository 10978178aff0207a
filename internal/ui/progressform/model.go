package progressform

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

// SubmitMsg carries a progress entry for the targeted item.
type SubmitMsg struct {
	ItemID  int64
	Request api.ProgressRequest
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	sessionDate string
	duration    string
	notes       string
	value       string
	unit        string
}

// Model is the progress logging form for habits.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	itemID    int64
	itemTitle string
	width     int
	height    int
}

// New creates a new progress form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for logging progress on an item. The
// session date defaults to today.
func (m *Model) Start(item model.Item) tea.Cmd {
	m.itemID = item.ID
	m.itemTitle = item.Title
	*m.fb = formBindings{
		sessionDate: time.Now().Format("2006-01-02"),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the progress form.
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

// View renders the progress form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Log Progress: "+m.itemTitle) +
		"\n" + m.form.View()

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
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Session Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.sessionDate).
			Validate(validateDate),
		huh.NewInput().
			Title("Duration Minutes").
			Placeholder("optional, at least 1").
			Value(&m.fb.duration).
			Validate(validateOptionalIntMin(1)),
		huh.NewInput().
			Title("Progress Value").
			Placeholder("optional, e.g. 2.5").
			Value(&m.fb.value).
			Validate(validateOptionalFloatMin(0)),
		huh.NewInput().
			Title("Unit").
			Placeholder("optional, e.g. km, pages").
			Value(&m.fb.unit),
		huh.NewText().
			Title("Notes").
			Placeholder("optional").
			Value(&m.fb.notes),
	))
}

func (m Model) handleSubmit() tea.Cmd {
	req := api.ProgressRequest{
		SessionDate: strings.TrimSpace(m.fb.sessionDate),
	}

	if d := strings.TrimSpace(m.fb.duration); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			req.Duration = &n
		}
	}
	if v := strings.TrimSpace(m.fb.value); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.ProgressValue = &f
		}
	}
	if u := strings.TrimSpace(m.fb.unit); u != "" {
		req.ProgressUnit = &u
	}
	if n := strings.TrimSpace(m.fb.notes); n != "" {
		req.Notes = &n
	}

	itemID := m.itemID
	return func() tea.Msg {
		return SubmitMsg{ItemID: itemID, Request: req}
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalIntMin(minValue int) func(string) error {
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

func validateOptionalFloatMin(minValue float64) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if f < minValue {
			return fmt.Errorf("must be at least %g", minValue)
		}
		return nil
	}
}
