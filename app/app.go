package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VinayakFrontend/task-manager-app/client"
	"github.com/VinayakFrontend/task-manager-app/ui"
	"github.com/VinayakFrontend/task-manager-app/ui/loginform"
	"github.com/VinayakFrontend/task-manager-app/ui/taskform"
	"github.com/VinayakFrontend/task-manager-app/ui/tasklist"
	"github.com/VinayakFrontend/task-manager-app/ui/usermgr"
)

// ViewState represents the current active view.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewTasks
	ViewTaskForm
	ViewUsers
)

const toastDuration = 3 * time.Second

// Model is the root Bubble Tea model: it routes messages between views,
// owns the toast bar and handles session expiry.
type Model struct {
	api  *client.Client
	keys *ui.KeyMap

	view  ViewState
	login loginform.Model
	tasks tasklist.Model
	form  taskform.Model
	users usermgr.Model

	toast    string
	toastErr bool
	width    int
	height   int
}

// New builds the root model. With a valid stored session the app opens on
// the task list, otherwise on the login form.
func New(api *client.Client) Model {
	keys := ui.DefaultKeyMap()
	m := Model{
		api:   api,
		keys:  keys,
		view:  ViewLogin,
		login: loginform.New(api, 80, 24),
		tasks: tasklist.New(api, keys, 80, 24),
		form:  taskform.New(api, 80, 24),
		users: usermgr.New(api, keys, 80, 24),
	}
	if !api.Session().Expired() {
		m.view = ViewTasks
	}
	return m
}

// Init kicks off the initial view.
func (m Model) Init() tea.Cmd {
	if m.view == ViewTasks {
		return m.tasks.Reload()
	}
	return m.login.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Every view tracks its own size.
		m.login, _ = m.login.Update(msg)
		m.tasks, _ = m.tasks.Update(msg)
		m.form, _ = m.form.Update(msg)
		m.users, _ = m.users.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "q" && m.quitAllowed() {
			return m, tea.Quit
		}
		return m.routeToActive(msg)

	case ui.ToastMsg:
		m.toast = msg.Text
		m.toastErr = msg.Error
		return m, ui.ClearToastAfter(toastDuration)

	case ui.ClearToastMsg:
		m.toast = ""
		return m, nil

	case ui.SessionExpiredMsg:
		_ = m.api.Logout()
		m.view = ViewLogin
		cmd := m.login.Reset()
		return m, tea.Batch(cmd, ui.ToastError("Session expired, please log in again"))

	case loginform.AuthenticatedMsg:
		m.view = ViewTasks
		return m, tea.Batch(m.tasks.Reload(), ui.Toast("Logged in"))

	case tasklist.NewRequestedMsg:
		m.view = ViewTaskForm
		return m, m.form.StartCreate()

	case tasklist.EditRequestedMsg:
		m.view = ViewTaskForm
		return m, m.form.StartEdit(msg.Task)

	case tasklist.OpenUsersMsg:
		m.view = ViewUsers
		return m, m.users.Reload()

	case tasklist.LogoutRequestedMsg:
		_ = m.api.Logout()
		m.view = ViewLogin
		cmd := m.login.Reset()
		return m, tea.Batch(cmd, ui.Toast("Logged out"))

	case taskform.SavedMsg:
		m.view = ViewTasks
		return m, tea.Batch(m.tasks.Reload(), ui.Toast("Task saved"))

	case taskform.CancelMsg:
		m.view = ViewTasks
		return m, nil

	case usermgr.BackMsg:
		m.view = ViewTasks
		return m, m.tasks.Reload()
	}

	// Async replies (loaded lists, mutation results) are typed per view;
	// fan them out so a view still receives its reply after a view switch.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	cmds = append(cmds, cmd)
	m.tasks, cmd = m.tasks.Update(msg)
	cmds = append(cmds, cmd)
	m.form, cmd = m.form.Update(msg)
	cmds = append(cmds, cmd)
	m.users, cmd = m.users.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// quitAllowed reports whether "q" should quit instead of being typed into
// a form.
func (m Model) quitAllowed() bool {
	switch m.view {
	case ViewTasks:
		return !m.tasks.Commenting()
	case ViewUsers:
		return !m.users.Editing()
	default:
		return false
	}
}

func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case ViewTaskForm:
		m.form, cmd = m.form.Update(msg)
	case ViewUsers:
		m.users, cmd = m.users.Update(msg)
	}
	return m, cmd
}

// View renders the active view with the toast bar underneath.
func (m Model) View() string {
	var body string
	switch m.view {
	case ViewLogin:
		body = m.login.View()
	case ViewTasks:
		body = m.tasks.View()
	case ViewTaskForm:
		body = m.form.View()
	case ViewUsers:
		body = m.users.View()
	}

	bar := ""
	if m.toast != "" {
		if m.toastErr {
			bar = ui.ToastErrorStyle.Render(m.toast)
		} else {
			bar = ui.ToastStyle.Render(m.toast)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, bar)
}
