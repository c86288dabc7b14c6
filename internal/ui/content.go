package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/leighmacdonald/erp-tui/internal/ui/styles"
)

const pageRows = 40

// contentModel is the scrollable page area beside the panel. It stops scrolling while the
// document scroll lock is held.
type contentModel struct {
	viewport viewport.Model
	doc      *document.Document
	tree     nav.Tree
	path     string
}

func newContentModel(doc *document.Document, tree nav.Tree) *contentModel {
	return &contentModel{
		viewport: viewport.New(0, 0),
		doc:      doc,
		tree:     tree,
	}
}

func (m *contentModel) setPath(path string) {
	m.path = path
	m.viewport.SetContent(m.render())
	m.viewport.GotoTop()
}

func (m *contentModel) setSize(width int, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if m.viewport.Width == width && m.viewport.Height == height {
		return
	}

	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.render())
}

func (m *contentModel) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		if m.doc.ScrollLocked() {
			return nil
		}
	default:
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return cmd
}

func (m *contentModel) View() string {
	return m.viewport.View()
}

func (m *contentModel) title() string {
	if item, found := m.tree.Active(m.path); found {
		return item.Label
	}

	return "Overview"
}

func (m *contentModel) render() string {
	width := max(m.viewport.Width-2, 1)
	lines := []string{styles.ContentTitle.Render(m.title())}

	if m.path != "" {
		lines = append(lines, styles.ContentMuted.Render(m.path), "")
	}

	for idx := range pageRows {
		row := fmt.Sprintf("%-6s %s record %03d", fmt.Sprintf("#%d", idx+1), m.title(), idx+1)
		lines = append(lines, styles.ContentBody.Render(row))
	}

	return lipgloss.NewStyle().Padding(0, 1).Width(width).Render(strings.Join(lines, "\n"))
}
