package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/leighmacdonald/erp-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

type drawerEntryKind int

const (
	entryDismiss drawerEntryKind = iota
	entryGroup
	entryItem
)

type drawerEntry struct {
	kind    drawerEntryKind
	element document.Element
	group   string
	item    nav.Item
}

// drawerModel renders the mobile overlay and maps its rows onto the drawer focus trap.
type drawerModel struct {
	id          string
	drawer      *sidebar.Drawer
	machine     *sidebar.Machine
	doc         *document.Document
	tree        nav.Tree
	currentPath string
	entries     []drawerEntry
}

func newDrawerModel(machine *sidebar.Machine, doc *document.Document, tree nav.Tree, opts sidebar.DrawerOptions) *drawerModel {
	model := &drawerModel{
		id:      zone.NewPrefix(),
		machine: machine,
		doc:     doc,
		tree:    tree,
	}

	model.drawer = sidebar.NewDrawer(doc, opts, model.contains)
	model.refresh()

	return model
}

func (m *drawerModel) widthCells() int {
	return document.PxToCells(m.drawer.Options().WidthPx)
}

// contains reports whether a cell lies on the drawer surface.
func (m *drawerModel) contains(x int, _ int) bool {
	return x >= 0 && x < m.widthCells()
}

// refresh rebuilds the focusable rows, the dismiss control first.
func (m *drawerModel) refresh() {
	entries := []drawerEntry{{kind: entryDismiss, element: document.NewElement(m.id + "dismiss")}}

	for _, group := range m.tree.Groups {
		entries = append(entries, drawerEntry{
			kind:    entryGroup,
			element: document.NewElement(m.id + "group:" + group.Name),
			group:   group.Name,
		})

		if m.machine.GroupCollapsed(group.Name) {
			continue
		}

		for _, item := range group.Items {
			entries = append(entries, drawerEntry{
				kind:    entryItem,
				element: document.NewElement(m.id + "item:" + item.Path),
				group:   group.Name,
				item:    item,
			})
		}
	}

	elements := make([]document.Element, len(entries))
	for idx, entry := range entries {
		elements[idx] = entry.element
	}

	m.entries = entries
	m.drawer.SetFocusables(elements)
}

// toggle opens the drawer with freshly built entries or closes it when open.
func (m *drawerModel) toggle() tea.Cmd {
	if !m.drawer.IsOpen() {
		m.refresh()
	}

	return m.drawer.Toggle()
}

func (m *drawerModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case navigateMsg:
		m.currentPath = msg.path
	case sidebar.Event:
		if msg.Name == sidebar.EventGroupChanged {
			m.refresh()
		}
	case tea.MouseMsg:
		if !m.drawer.IsOpen() || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return nil
		}

		for _, entry := range m.entries {
			if zone.Get(entry.element.ID()).InBounds(msg) {
				return m.activate(entry)
			}
		}
	}

	return m.drawer.Update(msg)
}

// activateFocused runs the row holding focus, if any.
func (m *drawerModel) activateFocused() (bool, tea.Cmd) {
	idx := m.drawer.FocusedIndex()
	if idx < 0 || idx >= len(m.entries) {
		return false, nil
	}

	return true, m.activate(m.entries[idx])
}

func (m *drawerModel) activate(entry drawerEntry) tea.Cmd {
	switch entry.kind {
	case entryDismiss:
		return m.drawer.Close(sidebar.CloseButton)
	case entryGroup:
		m.machine.ToggleGroup(entry.group)
		m.refresh()
		m.doc.Focus(entry.element)
	case entryItem:
		return navigate(entry.item.Path)
	}

	return nil
}

// View draws the drawer over base. Nothing is drawn once fully closed.
func (m *drawerModel) View(base string, height int) string {
	if m.drawer.Phase() == sidebar.DrawerClosed || height <= 0 {
		return base
	}

	width := m.widthCells()
	inner := width - 1
	feedback := m.drawer.Feedback()

	fg := styles.White
	if feedback.Applied {
		fg = styles.Fade(styles.White, styles.Black, feedback.Opacity)
	}

	active, _ := m.tree.Active(m.currentPath)
	rows := make([]string, 0, len(m.entries)+1)

	for _, entry := range m.entries {
		focused := m.doc.IsFocused(entry.element.ID())
		rows = append(rows, zone.Mark(entry.element.ID(), m.row(entry, inner, fg, focused, entry.item.Path == active.Path)))
		if entry.kind == entryDismiss {
			rows = append(rows, "")
		}
	}

	surface := styles.PanelStyle.Foreground(fg).Width(inner).Height(height).Render(fitHeight(strings.Join(rows, "\n"), height))
	shadow := strings.TrimSuffix(strings.Repeat(styles.DrawerShadow.Render("▌")+"\n", height), "\n")
	drawn := lipgloss.JoinHorizontal(lipgloss.Top, surface, shadow)

	if feedback.Applied && feedback.TranslateX < 0 {
		drawn = cropLeft(drawn, document.PxToCells(int(-feedback.TranslateX)))
	}

	return overlay(base, drawn, 0, 0)
}

func (m *drawerModel) row(entry drawerEntry, width int, fg lipgloss.Color, focused bool, active bool) string {
	var (
		style = lipgloss.NewStyle().Foreground(fg).Width(width)
		text  string
	)

	switch entry.kind {
	case entryDismiss:
		title := styles.DrawerTitle.Render("Navigation")
		button := styles.DrawerDismiss.Render(" " + styles.IconDismiss + " ")
		if focused {
			button = styles.PanelFocused.Inherit(styles.DrawerDismiss).Render(" " + styles.IconDismiss + " ")
		}

		gap := max(width-lipgloss.Width(title)-lipgloss.Width(button)-1, 0)

		return " " + title + strings.Repeat(" ", gap) + button
	case entryGroup:
		marker := styles.IconGroupOpen
		if m.machine.GroupCollapsed(entry.group) {
			marker = styles.IconGroupClosed
		}

		style = style.Inherit(styles.PanelGroup)
		text = " " + marker + " " + entry.group
	case entryItem:
		icon := entry.item.Icon
		if icon == "" {
			icon = styles.IconItemFallback
		}

		if active {
			style = styles.PanelItemActive.Width(width)
		} else {
			style = style.PaddingLeft(2)
		}
		text = icon + " " + entry.item.Label
	}

	if focused {
		style = style.Inherit(styles.PanelFocused)
	}

	return style.Render(truncate.StringWithTail(text, uint(max(width-2, 1)), "…"))
}
