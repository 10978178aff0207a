package itemform

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

// SubmitMsg is dispatched when the form is submitted. ItemID is set only
// in edit mode.
type SubmitMsg struct {
	Edit    bool
	ItemID  int64
	Request api.ItemRequest
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	itemType    model.ItemType
	priority    model.Priority
	complexity  model.Complexity
	dueDate     string
	categoryID  string
	estimate    string
	habitStage  string
	habitTarget string
}

// Model is the Bubble Tea model for the item create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editMode   bool
	editID     int64
	parentID   *int64
	categories []model.Category
	width      int
	height     int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			itemType:   model.ItemTypeTask,
			priority:   model.PriorityMedium,
			complexity: model.ComplexityMedium,
		},
		width:  width,
		height: height,
	}
}

// SetCategories sets the available categories for the selector.
func (m *Model) SetCategories(categories []model.Category) {
	m.categories = categories
}

// StartCreate initializes the form for creating a new item. A non-nil
// parentID creates a subtask of that item.
func (m *Model) StartCreate(parentID *int64) tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.parentID = parentID
	*m.fb = formBindings{
		itemType:   model.ItemTypeTask,
		priority:   model.PriorityMedium,
		complexity: model.ComplexityMedium,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing item.
func (m *Model) StartEdit(item model.Item) tea.Cmd {
	m.editMode = true
	m.editID = item.ID
	m.parentID = item.ParentItemID

	fb := formBindings{
		title:      item.Title,
		itemType:   item.Type,
		priority:   item.Priority,
		complexity: item.Complexity,
	}
	if item.Description != nil {
		fb.description = *item.Description
	}
	if item.DueDate != nil {
		fb.dueDate = item.DueDate.Format("2006-01-02")
	}
	if item.CategoryID != nil {
		fb.categoryID = strconv.FormatInt(*item.CategoryID, 10)
	}
	if item.EstimatedDuration != nil {
		fb.estimate = strconv.Itoa(*item.EstimatedDuration)
	}
	if item.HabitStage != nil {
		fb.habitStage = *item.HabitStage
	}
	if item.HabitTargetDays != nil {
		fb.habitTarget = strconv.Itoa(*item.HabitTargetDays)
	}
	*m.fb = fb

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the item form.
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

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Item"
	switch {
	case m.editMode:
		titleText = "Edit Item"
	case m.parentID != nil:
		titleText = "New Subtask"
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
	typeOpts := make([]huh.Option[model.ItemType], len(model.ItemTypes))
	for i, t := range model.ItemTypes {
		typeOpts[i] = huh.NewOption(t.Label(), t)
	}

	priorityOpts := make([]huh.Option[model.Priority], len(model.Priorities))
	for i, p := range model.Priorities {
		priorityOpts[i] = huh.NewOption(p.Label(), p)
	}

	complexityOpts := make([]huh.Option[model.Complexity], len(model.Complexities))
	for i, c := range model.Complexities {
		complexityOpts[i] = huh.NewOption(c.Label(), c)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs doing?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.ItemType]().
			Title("Type").
			Options(typeOpts...).
			Value(&m.fb.itemType),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(priorityOpts...).
			Value(&m.fb.priority),
		huh.NewSelect[model.Complexity]().
			Title("Complexity").
			Options(complexityOpts...).
			Value(&m.fb.complexity),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		m.categoryField(),
		huh.NewInput().
			Title("Estimated Minutes").
			Placeholder("optional, at least 1").
			Value(&m.fb.estimate).
			Validate(validateOptionalMin(1)),
		huh.NewInput().
			Title("Habit Stage").
			Placeholder("habits only, e.g. building").
			Value(&m.fb.habitStage),
		huh.NewInput().
			Title("Habit Target Days").
			Placeholder("habits only, at least 1").
			Value(&m.fb.habitTarget).
			Validate(validateOptionalMin(1)),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(
			c.Name, strconv.FormatInt(c.ID, 10),
		))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.categoryID)
}

// handleSubmit shapes the form values into a request. Empty optional
// strings become nil fields, and due dates become end-of-day local
// timestamps so a due item stays actionable for its whole day.
func (m Model) handleSubmit() tea.Cmd {
	req := api.ItemRequest{
		Title:        strings.TrimSpace(m.fb.title),
		Type:         m.fb.itemType,
		Priority:     m.fb.priority,
		Complexity:   m.fb.complexity,
		ParentItemID: m.parentID,
	}

	if desc := strings.TrimSpace(m.fb.description); desc != "" {
		req.Description = &desc
	}

	if due := strings.TrimSpace(m.fb.dueDate); due != "" {
		if t, err := time.ParseInLocation("2006-01-02", due, time.Local); err == nil {
			eod := time.Date(
				t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.Local,
			).Format(time.RFC3339)
			req.DueDate = &eod
		}
	}

	if m.fb.categoryID != "" {
		if id, err := strconv.ParseInt(m.fb.categoryID, 10, 64); err == nil {
			req.CategoryID = &id
		}
	}

	if est := strings.TrimSpace(m.fb.estimate); est != "" {
		if n, err := strconv.Atoi(est); err == nil {
			req.EstimatedDuration = &n
		}
	}

	if m.fb.itemType == model.ItemTypeHabit {
		if stage := strings.TrimSpace(m.fb.habitStage); stage != "" {
			req.HabitStage = &stage
		}
		if target := strings.TrimSpace(m.fb.habitTarget); target != "" {
			if n, err := strconv.Atoi(target); err == nil {
				req.HabitTargetDays = &n
			}
		}
	}

	edit := m.editMode
	editID := m.editID
	return func() tea.Msg {
		return SubmitMsg{Edit: edit, ItemID: editID, Request: req}
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

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
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
