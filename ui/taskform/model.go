package taskform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/VinayakFrontend/task-manager-app/client"
	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/ui"
)

// SavedMsg is dispatched when a task is created or updated via the form.
type SavedMsg struct {
	Task models.TaskView
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

type usersLoadedMsg struct {
	users []models.UserInfo
	err   error
}

type savedResultMsg struct {
	task models.TaskView
	err  error
}

// bindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type bindings struct {
	title       string
	description string
	assignee    string
}

// Model is the admin-only task create/edit form. The assignee selector is
// populated from the user directory.
type Model struct {
	api      *client.Client
	form     *huh.Form
	fb       *bindings
	editMode bool
	editID   string
	users    []models.UserInfo
	busy     bool
	width    int
	height   int
}

func New(api *client.Client, width, height int) Model {
	return Model{api: api, fb: &bindings{}, width: width, height: height}
}

// StartCreate initializes the form for a new task. The form renders once
// the assignable users have loaded.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.form = nil
	m.busy = false
	*m.fb = bindings{}
	return m.loadUsers()
}

// StartEdit initializes the form with an existing task's fields.
func (m *Model) StartEdit(task models.TaskView) tea.Cmd {
	m.editMode = true
	m.editID = task.ID.Hex()
	m.form = nil
	m.busy = false
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.assignee = ""
	if task.Assignee != nil {
		m.fb.assignee = task.Assignee.ID.Hex()
	}
	return m.loadUsers()
}

func (m Model) loadUsers() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		users, err := api.ListUsers()
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m Model) buildForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(m.users))
	for _, u := range m.users {
		options = append(options, huh.NewOption(u.Name+" <"+u.Email+">", u.ID.Hex()))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&m.fb.title),
		huh.NewInput().Title("Description").Value(&m.fb.description),
		huh.NewSelect[string]().Title("Assign to").Options(options...).Value(&m.fb.assignee),
	))
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			if client.Unauthorized(msg.err) {
				return m, ui.SessionExpired()
			}
			return m, tea.Batch(
				func() tea.Msg { return CancelMsg{} },
				ui.ToastError(msg.err.Error()),
			)
		}
		m.users = msg.users
		m.form = m.buildForm()
		return m, m.form.Init()

	case savedResultMsg:
		m.busy = false
		if msg.err != nil {
			if client.Unauthorized(msg.err) {
				return m, ui.SessionExpired()
			}
			// Rebuild so the user can fix the input and retry.
			m.form = m.buildForm()
			return m, tea.Batch(m.form.Init(), ui.ToastError(msg.err.Error()))
		}
		return m, func() tea.Msg { return SavedMsg{Task: msg.task} }
	}

	if m.form == nil || m.busy {
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
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m Model) submit() tea.Cmd {
	fb := *m.fb
	api := m.api
	editMode, editID := m.editMode, m.editID
	return func() tea.Msg {
		var task models.TaskView
		var err error
		if editMode {
			task, err = api.UpdateTask(editID, fb.title, fb.description, fb.assignee)
		} else {
			task, err = api.CreateTask(fb.title, fb.description, fb.assignee)
		}
		return savedResultMsg{task: task, err: err}
	}
}

// View renders the form, or a placeholder while users load.
func (m Model) View() string {
	title := "New task"
	if m.editMode {
		title = "Edit task"
	}
	body := ui.DimStyle.Render("Loading users...")
	if m.form != nil {
		body = m.form.View()
	}
	if m.busy {
		body = ui.DimStyle.Render("Saving...")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render(title),
		body,
		ui.HelpStyle.Render("esc: cancel"),
	)
}
