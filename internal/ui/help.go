package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui/input"
	"github.com/leighmacdonald/erp-tui/internal/ui/styles"
)

type helpModel struct {
	helpView     help.Model
	keys         sidebar.KeyMap
	configPath   string
	databasePath string
	buildVersion string
}

func newHelpModel(keys sidebar.KeyMap, buildVersion string, configPath string, databasePath string) *helpModel {
	return &helpModel{
		helpView:     help.New(),
		keys:         keys,
		configPath:   configPath,
		databasePath: databasePath,
		buildVersion: buildVersion,
	}
}

func (m *helpModel) View(width int, height int) string {
	columns := input.Default.FullHelp()
	panel := m.helpView.FullHelpView([][]key.Binding{m.keys.ShortHelp()})

	boxes := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		boxes = append(boxes, styles.HelpBox.Render(m.helpView.FullHelpView([][]key.Binding{column})))
	}
	boxes = append(boxes, styles.HelpBox.Render(panel))

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		styles.DetailRow("Version", m.buildVersion),
		styles.DetailRow("Config Path", m.configPath),
		styles.DetailRow("Database Path", m.databasePath),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
