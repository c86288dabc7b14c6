package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const clearMessageTimeout = time.Second * 5

// navigateMsg changes the current route.
type navigateMsg struct {
	path string
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path}
	}
}

type clearStatusMessageMsg struct{}

func clearStatusAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearStatusMessageMsg{}
	})
}

type statusMsg struct {
	Message string
	Err     bool
}

func setStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{Message: msg, Err: err}
	}
}

// tickMsg refreshes relative timestamps in the status bar.
type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
