package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/leighmacdonald/erp-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

const searchWidth = 24

// headerModel holds the hamburger control and the page search field.
type headerModel struct {
	id      string
	doc     *document.Document
	tree    nav.Tree
	search  textinput.Model
	element document.Element
}

func newHeaderModel(doc *document.Document, tree nav.Tree) *headerModel {
	search := textinput.New()
	search.Prompt = styles.SearchPrompt.Render("/ ")
	search.Placeholder = "Search pages"
	search.Width = searchWidth
	search.CharLimit = 64

	return &headerModel{
		id:      zone.NewPrefix(),
		doc:     doc,
		tree:    tree,
		search:  search,
		element: document.NewTextElement("search"),
	}
}

func (m *headerModel) hamburgerHit(msg tea.MouseMsg) bool {
	return zone.Get(m.id + "hamburger").InBounds(msg)
}

func (m *headerModel) searchHit(msg tea.MouseMsg) bool {
	return zone.Get(m.id + "search").InBounds(msg)
}

func (m *headerModel) typing() bool {
	return m.doc.IsFocused(m.element.ID())
}

func (m *headerModel) focusSearch() tea.Cmd {
	m.doc.Focus(m.element)

	return m.search.Focus()
}

func (m *headerModel) blurSearch() {
	m.doc.Blur(m.element)
	m.search.Blur()
}

// submit navigates to the first page whose label contains the query.
func (m *headerModel) submit() tea.Cmd {
	query := strings.TrimSpace(m.search.Value())
	m.search.Reset()
	m.blurSearch()

	if query == "" {
		return nil
	}

	if item, found := searchTree(m.tree, query); found {
		return navigate(item.Path)
	}

	return setStatusMessage("No page matches "+query, true)
}

func (m *headerModel) Update(msg tea.Msg) tea.Cmd {
	if !m.typing() {
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return cmd
}

func (m *headerModel) View(width int, title string) string {
	hamburger := zone.Mark(m.id+"hamburger", styles.HeaderButton.Render(styles.IconMenu))
	left := lipgloss.JoinHorizontal(lipgloss.Top, hamburger, styles.HeaderTitle.Render(title))
	right := zone.Mark(m.id+"search", styles.SearchContainer.Render(m.search.View()))

	if width-lipgloss.Width(left) < lipgloss.Width(right) {
		right = ""
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return styles.HeaderContainerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func searchTree(tree nav.Tree, query string) (nav.Item, bool) {
	query = strings.ToLower(query)
	for _, group := range tree.Groups {
		for _, item := range group.Items {
			if strings.Contains(strings.ToLower(item.Label), query) {
				return item, true
			}
		}
	}

	return nav.Item{}, false
}
