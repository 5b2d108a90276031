package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg carries a transient notification for the status bar.
type ToastMsg struct {
	Text  string
	Error bool
}

// ClearToastMsg hides the current toast.
type ClearToastMsg struct{}

// SessionExpiredMsg is dispatched when any API call returns 401: the stored
// token is no longer accepted and the user must log in again.
type SessionExpiredMsg struct{}

// Toast dispatches a success notification.
func Toast(text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text} }
}

// ToastError dispatches a failure notification.
func ToastError(text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text, Error: true} }
}

// ClearToastAfter hides the toast once d has elapsed.
func ClearToastAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearToastMsg{} })
}

// SessionExpired dispatches a SessionExpiredMsg.
func SessionExpired() tea.Cmd {
	return func() tea.Msg { return SessionExpiredMsg{} }
}
