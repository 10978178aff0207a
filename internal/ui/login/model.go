package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// LoginMsg carries submitted credentials.
type LoginMsg struct {
	Username string
	Password string
}

// RegisterMsg carries a submitted registration request.
type RegisterMsg struct {
	Request api.RegisterRequest
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	register    bool
	username    string
	password    string
	email       string
	displayName string
}

// Model is the login / registration screen shown when no session exists.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	errText string
	width   int
	height  int
}

// New creates a new login model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the login form.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.errText = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a failure message and restarts the form so the user
// can try again.
func (m *Model) SetError(text string) tea.Cmd {
	m.errText = text
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the login screen.
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
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the login screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var sections []string
	sections = append(sections, titleStyle.Render("Sonic Task Hub"))
	if m.errText != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errText))
	}
	sections = append(sections, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	main := huh.NewGroup(
		huh.NewConfirm().
			Title("New account?").
			Affirmative("Register").
			Negative("Log in").
			Value(&m.fb.register),
		huh.NewInput().
			Title("Username").
			Value(&m.fb.username).
			Validate(validateRequired("Username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(validateRequired("Password")),
	)

	registration := huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("optional").
			Value(&m.fb.email),
		huh.NewInput().
			Title("Display Name").
			Placeholder("optional").
			Value(&m.fb.displayName),
	).WithHideFunc(func() bool { return !m.fb.register })

	return huh.NewForm(main, registration)
}

func (m Model) handleSubmit() tea.Cmd {
	username := strings.TrimSpace(m.fb.username)
	password := m.fb.password

	if !m.fb.register {
		return func() tea.Msg {
			return LoginMsg{Username: username, Password: password}
		}
	}

	req := api.RegisterRequest{
		Username: username,
		Password: password,
	}
	if email := strings.TrimSpace(m.fb.email); email != "" {
		req.Email = &email
	}
	if name := strings.TrimSpace(m.fb.displayName); name != "" {
		req.DisplayName = &name
	}
	return func() tea.Msg { return RegisterMsg{Request: req} }
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
