package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui/input"
	"github.com/leighmacdonald/erp-tui/internal/ui/styles"
)

// statusBarModel observes panel change notifications and shows the latest state.
type statusBarModel struct {
	state       sidebar.State
	changedAt   time.Time
	lastGroup   string
	statusMsg   string
	statusError bool
	path        string
	version     string
	mobile      bool
}

func newStatusBarModel(version string, state sidebar.State) *statusBarModel {
	return &statusBarModel{version: version, state: state}
}

func (m *statusBarModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sidebar.Event:
		m.changedAt = time.Now()
		switch msg.Name {
		case sidebar.EventChanged:
			m.state = msg.State
			m.lastGroup = ""
		case sidebar.EventGroupChanged:
			m.lastGroup = msg.Group
		}
	case navigateMsg:
		m.path = msg.path
	case statusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return clearStatusAfter(clearMessageTimeout)
	case clearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	}

	return nil
}

func (m *statusBarModel) View(width int) string {
	mode := "desktop"
	if m.mobile {
		mode = "mobile"
	}

	args := []string{
		styles.StatusState.Render(fmt.Sprintf("panel %s", m.state)),
		styles.StatusChanged.Render(m.changed()),
		styles.StatusRouteStyle.Render(m.path),
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(helpHint(input.Default.Help) + " " + mode),
		m.status(),
	}

	return styles.FooterContainerStyle.Width(width).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m *statusBarModel) changed() string {
	if m.changedAt.IsZero() {
		return "unchanged"
	}

	if m.lastGroup != "" {
		return fmt.Sprintf("%s toggled %s", m.lastGroup, humanize.Time(m.changedAt))
	}

	return "changed " + humanize.Time(m.changedAt)
}

func (m *statusBarModel) status() string {
	if m.statusMsg == "" {
		return ""
	}

	if m.statusError {
		return styles.StatusError.Render(m.statusMsg)
	}

	return styles.StatusMessage.Render(m.statusMsg)
}

func helpHint(binding key.Binding) string {
	return fmt.Sprintf("%s %s", binding.Help().Key, binding.Help().Desc)
}
