package tasklist

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

// NewRequestedMsg asks the app to open the task form in create mode.
type NewRequestedMsg struct{}

// EditRequestedMsg asks the app to open the task form for an existing task.
type EditRequestedMsg struct {
	Task models.TaskView
}

// OpenUsersMsg asks the app to open the user management view.
type OpenUsersMsg struct{}

// LogoutRequestedMsg asks the app to drop the session.
type LogoutRequestedMsg struct{}

type tasksLoadedMsg struct {
	tasks []models.TaskView
	err   error
}

type mutatedMsg struct {
	task models.TaskView
	note string
	err  error
}

type commentBindings struct {
	text string
}

// Model is the task list view. Admins see every task; users see their own.
type Model struct {
	api    *client.Client
	keys   *ui.KeyMap
	tasks  []models.TaskView
	cursor int

	commenting  bool
	commentForm *huh.Form
	cfb         *commentBindings

	width  int
	height int
}

func New(api *client.Client, keys *ui.KeyMap, width, height int) Model {
	return Model{
		api:    api,
		keys:   keys,
		cfb:    &commentBindings{},
		width:  width,
		height: height,
	}
}

// Commenting reports whether the inline comment form is open.
func (m Model) Commenting() bool { return m.commenting }

// Reload fetches the task list from the server.
func (m Model) Reload() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		tasks, err := api.ListTasks()
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// fail maps an API error to a toast, or to session expiry on a 401.
func fail(err error) tea.Cmd {
	if client.Unauthorized(err) {
		return ui.SessionExpired()
	}
	return ui.ToastError(err.Error())
}

// Update handles messages for the task list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			return m, fail(msg.err)
		}
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = len(m.tasks) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			return m, fail(msg.err)
		}
		// Reload rather than patching in place: read-your-own-writes
		// via a full list refresh.
		return m, tea.Batch(m.Reload(), ui.Toast(msg.note))
	}

	if m.commenting {
		return m.updateCommentForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	admin := m.api.Session().IsAdmin()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Reload()

	case key.Matches(msg, m.keys.Complete):
		if t, ok := m.selected(); ok {
			return m, m.complete(t.ID.Hex())
		}
	case key.Matches(msg, m.keys.Comment):
		if _, ok := m.selected(); ok {
			m.commenting = true
			m.cfb.text = ""
			m.commentForm = huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Comment").Value(&m.cfb.text),
			))
			return m, m.commentForm.Init()
		}

	case key.Matches(msg, m.keys.New) && admin:
		return m, func() tea.Msg { return NewRequestedMsg{} }
	case key.Matches(msg, m.keys.Edit) && admin:
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg { return EditRequestedMsg{Task: t} }
		}
	case key.Matches(msg, m.keys.Delete) && admin:
		if t, ok := m.selected(); ok {
			return m, m.delete(t.ID.Hex())
		}
	case key.Matches(msg, m.keys.Users) && admin:
		return m, func() tea.Msg { return OpenUsersMsg{} }

	case key.Matches(msg, m.keys.Logout):
		return m, func() tea.Msg { return LogoutRequestedMsg{} }
	}
	return m, nil
}

func (m Model) updateCommentForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.commentForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.commentForm = f
	}

	if m.commentForm.State == huh.StateCompleted {
		m.commenting = false
		if t, ok := m.selected(); ok && m.cfb.text != "" {
			return m, m.comment(t.ID.Hex(), m.cfb.text)
		}
		return m, nil
	}
	if m.commentForm.State == huh.StateAborted {
		m.commenting = false
		return m, nil
	}
	return m, cmd
}

func (m Model) selected() (models.TaskView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return models.TaskView{}, false
	}
	return m.tasks[m.cursor], true
}

func (m Model) complete(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.CompleteTask(id)
		return mutatedMsg{task: task, note: "Task completed", err: err}
	}
}

func (m Model) comment(id, text string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.CommentTask(id, text)
		return mutatedMsg{task: task, note: "Comment added", err: err}
	}
}

func (m Model) delete(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.DeleteTask(id)
		return mutatedMsg{note: "Task deleted", err: err}
	}
}

// View renders the list with the selected task's details underneath.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Tasks"))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(ui.DimStyle.Render("No tasks."))
		b.WriteString("\n")
	}

	for i, t := range m.tasks {
		mark := "[ ]"
		if t.Status == models.StatusCompleted {
			mark = "[x]"
		}
		assignee := "unassigned"
		if t.Assignee != nil {
			assignee = t.Assignee.Name
		}
		line := fmt.Sprintf("%s %s %s", mark, t.Title, ui.DimStyle.Render("→ "+assignee))
		if t.Status == models.StatusCompleted {
			line = fmt.Sprintf("%s %s %s", mark, ui.CompletedStyle.Render(t.Title), ui.DimStyle.Render("→ "+assignee))
		}
		if i == m.cursor {
			b.WriteString(ui.SelectedStyle.Render("> "))
			b.WriteString(line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if t, ok := m.selected(); ok {
		b.WriteString("\n")
		if t.Description != "" {
			b.WriteString(ui.DimStyle.Render(t.Description))
			b.WriteString("\n")
		}
		for _, c := range t.Comments {
			b.WriteString(ui.DimStyle.Render("  · " + c.Text))
			b.WriteString("\n")
		}
	}

	if m.commenting {
		b.WriteString("\n")
		b.WriteString(m.commentForm.View())
	} else {
		b.WriteString("\n")
		b.WriteString(ui.HelpStyle.Render(m.helpLine()))
	}
	return b.String()
}

func (m Model) helpLine() string {
	parts := []string{"c complete", "m comment", "r refresh", "L logout", "q quit"}
	if m.api.Session().IsAdmin() {
		parts = append([]string{"n new", "e edit", "d delete", "u users"}, parts...)
	}
	return strings.Join(parts, " · ")
}
