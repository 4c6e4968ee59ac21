package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/stockroom/internal/auth"
)

// LoggedInMsg unlocks the menu.
type LoggedInMsg struct {
	Username string
}

type LoginModel struct {
	CommonModel
	authService *auth.Service

	form     *huh.Form
	username string
	password string
	err      error
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{authService: authSvc}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.username),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	username := m.form.GetString("username")
	password := m.form.GetString("password")

	if _, err := m.authService.Login(username, password); err != nil {
		m.err = err
		m.username = username
		m.password = ""
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	return m, func() tea.Msg { return LoggedInMsg{Username: username} }
}

func (m LoginModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Stockroom Login")

	content := header + "\n\n" + m.form.View()

	if m.err != nil {
		content += "\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("Login failed: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}
