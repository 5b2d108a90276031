package usermgr

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/VinayakFrontend/task-manager-app/client"
	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/ui"
)

// BackMsg asks the app to return to the task list.
type BackMsg struct{}

type usersLoadedMsg struct {
	users []models.UserInfo
	err   error
}

type mutatedMsg struct {
	note string
	err  error
}

type bindings struct {
	name     string
	email    string
	password string
	role     string
}

// Model is the admin-only user management view: a list of accounts with
// create, edit and delete forms.
type Model struct {
	api    *client.Client
	keys   *ui.KeyMap
	users  []models.UserInfo
	cursor int

	form   *huh.Form
	fb     *bindings
	editID string // empty while creating

	width  int
	height int
}

func New(api *client.Client, keys *ui.KeyMap, width, height int) Model {
	return Model{api: api, keys: keys, fb: &bindings{}, width: width, height: height}
}

// Editing reports whether a create/edit form is open.
func (m Model) Editing() bool { return m.form != nil }

// Reload fetches the user directory.
func (m Model) Reload() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		users, err := api.ListUsers()
		return usersLoadedMsg{users: users, err: err}
	}
}

func fail(err error) tea.Cmd {
	if client.Unauthorized(err) {
		return ui.SessionExpired()
	}
	return ui.ToastError(err.Error())
}

// Update handles messages for the user management view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			return m, fail(msg.err)
		}
		m.users = msg.users
		if m.cursor >= len(m.users) {
			m.cursor = len(m.users) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			return m, fail(msg.err)
		}
		return m, tea.Batch(m.Reload(), ui.Toast(msg.note))
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Reload()

	case key.Matches(msg, m.keys.New):
		m.editID = ""
		*m.fb = bindings{role: string(models.RoleUser)}
		m.form = m.buildForm(true)
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		if u, ok := m.selected(); ok {
			m.editID = u.ID.Hex()
			*m.fb = bindings{name: u.Name, email: u.Email, role: string(u.Role)}
			m.form = m.buildForm(false)
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Delete):
		if u, ok := m.selected(); ok {
			return m, m.delete(u.ID.Hex())
		}

	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

// buildForm assembles the user form. The password field only exists on
// create; it is not updatable through the directory.
func (m Model) buildForm(withPassword bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&m.fb.name),
		huh.NewInput().Title("Email").Value(&m.fb.email),
	}
	if withPassword {
		fields = append(fields,
			huh.NewInput().Title("Password").Password(true).Value(&m.fb.password),
		)
	}
	fields = append(fields,
		huh.NewSelect[string]().
			Title("Role").
			Options(
				huh.NewOption("User", string(models.RoleUser)),
				huh.NewOption("Admin", string(models.RoleAdmin)),
			).
			Value(&m.fb.role),
	)
	return huh.NewForm(huh.NewGroup(fields...))
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	fb := *m.fb
	api := m.api
	editID := m.editID
	return func() tea.Msg {
		if editID == "" {
			err := api.CreateUser(fb.name, fb.email, fb.password, models.Role(fb.role))
			return mutatedMsg{note: "User created", err: err}
		}
		_, err := api.UpdateUser(editID, fb.name, fb.email, models.Role(fb.role))
		return mutatedMsg{note: "User updated", err: err}
	}
}

func (m Model) delete(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.DeleteUser(id)
		return mutatedMsg{note: "User deleted", err: err}
	}
}

func (m Model) selected() (models.UserInfo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.users) {
		return models.UserInfo{}, false
	}
	return m.users[m.cursor], true
}

// View renders the user list, or the active form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Users"))
	b.WriteString("\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(ui.HelpStyle.Render("esc: cancel"))
		return b.String()
	}

	if len(m.users) == 0 {
		b.WriteString(ui.DimStyle.Render("No users."))
		b.WriteString("\n")
	}
	for i, u := range m.users {
		line := fmt.Sprintf("%s %s %s", u.Name, ui.DimStyle.Render(u.Email), ui.DimStyle.Render("("+string(u.Role)+")"))
		if i == m.cursor {
			b.WriteString(ui.SelectedStyle.Render("> "))
			b.WriteString(line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("n new · e edit · d delete · r refresh · esc back"))
	return b.String()
}
