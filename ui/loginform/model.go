package loginform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/VinayakFrontend/task-manager-app/client"
	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/ui"
)

// AuthenticatedMsg is dispatched after a successful login or signup.
type AuthenticatedMsg struct{}

type authResultMsg struct {
	err error
}

// bindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type bindings struct {
	name     string
	email    string
	password string
	role     string
}

// Model is the login/signup form. Ctrl+S toggles between the two modes.
type Model struct {
	api    *client.Client
	form   *huh.Form
	fb     *bindings
	signup bool
	busy   bool
	width  int
	height int
}

func New(api *client.Client, width, height int) Model {
	m := Model{
		api:    api,
		fb:     &bindings{role: string(models.RoleUser)},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the active form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form, switching back to login mode.
func (m *Model) Reset() tea.Cmd {
	m.signup = false
	m.busy = false
	*m.fb = bindings{role: string(models.RoleUser)}
	m.form = m.buildForm()
	return m.form.Init()
}

func (m Model) buildForm() *huh.Form {
	fields := []huh.Field{}
	if m.signup {
		fields = append(fields,
			huh.NewInput().Title("Name").Value(&m.fb.name),
		)
	}
	fields = append(fields,
		huh.NewInput().Title("Email").Value(&m.fb.email),
		huh.NewInput().Title("Password").Password(true).Value(&m.fb.password),
	)
	if m.signup {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("User", string(models.RoleUser)),
					huh.NewOption("Admin", string(models.RoleAdmin)),
				).
				Value(&m.fb.role),
		)
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" && !m.busy {
			m.signup = !m.signup
			m.form = m.buildForm()
			return m, m.form.Init()
		}

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			// Stay on the form so the user can retry.
			cmd := m.Reset()
			return m, tea.Batch(cmd, ui.ToastError(msg.err.Error()))
		}
		return m, func() tea.Msg { return AuthenticatedMsg{} }
	}

	if m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, tea.Quit
	}

	return m, cmd
}

func (m Model) submit() tea.Cmd {
	fb := *m.fb
	signup := m.signup
	api := m.api
	return func() tea.Msg {
		var err error
		if signup {
			err = api.Signup(fb.name, fb.email, fb.password, models.Role(fb.role))
		} else {
			err = api.Login(fb.email, fb.password)
		}
		return authResultMsg{err: err}
	}
}

// View renders the form with a mode heading.
func (m Model) View() string {
	title := "Log in"
	hint := "ctrl+s: sign up instead"
	if m.signup {
		title = "Sign up"
		hint = "ctrl+s: log in instead"
	}
	if m.busy {
		hint = "authenticating..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render(title),
		m.form.View(),
		ui.HelpStyle.Render(hint),
	)
}
