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

type panelAction int

const (
	actionNone panelAction = iota
	actionChevron
	actionMenu
	actionMenuEntry
	actionShowPanel
	actionGroup
	actionItem
)

type panelHit struct {
	action panelAction
	state  sidebar.State
	group  string
	path   string
}

// floating is content drawn over the composed screen at absolute coordinates.
type floating struct {
	content string
	x       int
	y       int
}

var menuEntries = []struct {
	label string
	state sidebar.State
}{
	{"Hide panel", sidebar.Hidden},
	{"Expand", sidebar.Expanded},
	{"Collapse", sidebar.Collapsed},
}

// panelModel renders the desktop navigation rail at the width the layout variable dictates.
type panelModel struct {
	id          string
	machine     *sidebar.Machine
	doc         *document.Document
	tree        nav.Tree
	currentPath string
	menuOpen    bool
	hoverPath   string
	hoverY      int
	top         int
}

func newPanelModel(machine *sidebar.Machine, doc *document.Document, tree nav.Tree, top int) *panelModel {
	return &panelModel{
		id:      zone.NewPrefix(),
		machine: machine,
		doc:     doc,
		tree:    tree,
		top:     top,
	}
}

// widthCells is the rail width read from the layout variable, zero while hidden.
func (m *panelModel) widthCells() int {
	if m.machine.State() == sidebar.Hidden {
		return 0
	}

	cells, found := m.doc.VarCells(sidebar.WidthVar)
	if !found {
		return 0
	}

	return cells
}

func (m *panelModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case navigateMsg:
		m.currentPath = msg.path
	case sidebar.Event:
		if msg.Name == sidebar.EventChanged && msg.State != sidebar.Collapsed {
			m.hoverPath = ""
		}
	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionMotion:
			m.trackHover(msg)
		case tea.MouseActionRelease:
			if msg.Button != tea.MouseButtonLeft {
				return nil
			}
			if hit, ok := m.hitTest(msg); ok {
				return m.perform(hit)
			}
		case tea.MouseActionPress:
		}
	}

	return nil
}

func (m *panelModel) hitTest(msg tea.MouseMsg) (panelHit, bool) {
	if m.machine.State() == sidebar.Hidden {
		if zone.Get(m.id + "show").InBounds(msg) {
			return panelHit{action: actionShowPanel}, true
		}

		return panelHit{}, false
	}

	if zone.Get(m.id + "chevron").InBounds(msg) {
		return panelHit{action: actionChevron}, true
	}

	if zone.Get(m.id + "menu").InBounds(msg) {
		return panelHit{action: actionMenu}, true
	}

	if m.menuOpen {
		for _, entry := range menuEntries {
			if zone.Get(m.id + "menu:" + entry.label).InBounds(msg) {
				return panelHit{action: actionMenuEntry, state: entry.state}, true
			}
		}

		// The menu's frame swallows clicks meant for the rows beneath it.
		if zone.Get(m.id + "menubox").InBounds(msg) {
			return panelHit{}, true
		}
	}

	for _, group := range m.tree.Groups {
		if zone.Get(m.id + "group:" + group.Name).InBounds(msg) {
			return panelHit{action: actionGroup, group: group.Name}, true
		}

		if m.machine.GroupCollapsed(group.Name) {
			continue
		}

		for _, item := range group.Items {
			if zone.Get(m.id + "item:" + item.Path).InBounds(msg) {
				return panelHit{action: actionItem, group: group.Name, path: item.Path}, true
			}
		}
	}

	return panelHit{}, false
}

func (m *panelModel) perform(hit panelHit) tea.Cmd {
	switch hit.action {
	case actionChevron:
		if m.machine.State() == sidebar.Expanded {
			m.machine.Collapse()
		} else {
			m.machine.Expand()
		}
	case actionMenu:
		m.menuOpen = !m.menuOpen
	case actionMenuEntry:
		m.menuOpen = false
		m.machine.Set(hit.state)
	case actionShowPanel:
		m.machine.Expand()
	case actionGroup:
		m.machine.ToggleGroup(hit.group)
	case actionItem:
		return navigate(hit.path)
	case actionNone:
	}

	return nil
}

// trackHover records the collapsed item under the pointer for its tooltip.
func (m *panelModel) trackHover(msg tea.MouseMsg) {
	m.hoverPath = ""
	if m.machine.State() != sidebar.Collapsed {
		return
	}

	for _, group := range m.tree.Groups {
		if m.machine.GroupCollapsed(group.Name) {
			continue
		}

		for _, item := range group.Items {
			info := zone.Get(m.id + "item:" + item.Path)
			if info.InBounds(msg) {
				m.hoverPath = item.Path
				m.hoverY = info.StartY

				return
			}
		}
	}
}

func (m *panelModel) View(height int) string {
	width := m.widthCells()
	if width <= 0 || height <= 0 {
		return ""
	}

	inner := width - 1
	collapsed := m.machine.State() == sidebar.Collapsed
	active, _ := m.tree.Active(m.currentPath)

	rows := []string{m.controls(inner, collapsed), ""}

	for _, group := range m.tree.Groups {
		groupCollapsed := m.machine.GroupCollapsed(group.Name)
		rows = append(rows, zone.Mark(m.id+"group:"+group.Name, m.groupRow(group, inner, collapsed, groupCollapsed)))
		if groupCollapsed {
			continue
		}

		for _, item := range group.Items {
			rows = append(rows, zone.Mark(m.id+"item:"+item.Path, m.itemRow(item, inner, collapsed, item.Path == active.Path)))
		}
	}

	content := fitHeight(strings.Join(rows, "\n"), height)
	border := strings.TrimSuffix(strings.Repeat(styles.PanelBorder.Render("│")+"\n", height), "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.PanelStyle.Width(inner).Height(height).Render(content),
		border)
}

func (m *panelModel) controls(width int, collapsed bool) string {
	chevron := styles.IconChevronLeft
	if collapsed {
		chevron = styles.IconChevronRight
	}

	left := zone.Mark(m.id+"chevron", styles.PanelControl.Render(" "+chevron+" "))
	right := zone.Mark(m.id+"menu", styles.PanelControl.Render(" "+styles.IconOverflow+" "))
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return left + strings.Repeat(" ", gap) + right
}

func (m *panelModel) groupRow(group nav.Group, width int, collapsed bool, groupCollapsed bool) string {
	if collapsed {
		icon := group.Icon
		if icon == "" {
			icon = styles.IconGroupFallback
		}

		return styles.PanelGroup.Width(width).Align(lipgloss.Center).Render(icon)
	}

	marker := styles.IconGroupOpen
	if groupCollapsed {
		marker = styles.IconGroupClosed
	}

	return styles.PanelGroup.Width(width).Render(truncate.StringWithTail(" "+marker+" "+group.Name, uint(width), "…"))
}

func (m *panelModel) itemRow(item nav.Item, width int, collapsed bool, active bool) string {
	icon := item.Icon
	if icon == "" {
		icon = styles.IconItemFallback
	}

	if collapsed {
		style := styles.PanelIcon
		if active {
			style = styles.PanelIconActive
		}

		return style.Width(width).Render(icon)
	}

	style := styles.PanelItem
	if active {
		style = styles.PanelItemActive
	}

	label := truncate.StringWithTail(icon+" "+item.Label, uint(max(width-2, 1)), "…")

	return style.Width(width).Render(label)
}

// floating returns the overflow menu, hover tooltip and show panel button for the current state.
func (m *panelModel) floating(bodyHeight int) []floating {
	var out []floating

	width := m.widthCells()
	state := m.machine.State()

	if state == sidebar.Hidden {
		button := zone.Mark(m.id+"show", styles.ShowPanelButton.Render(styles.IconMenu+" Show panel"))

		return append(out, floating{content: button, x: 1, y: m.top + max(bodyHeight-2, 0)})
	}

	if m.menuOpen {
		entries := make([]string, len(menuEntries))
		for idx, entry := range menuEntries {
			entries[idx] = zone.Mark(m.id+"menu:"+entry.label, styles.MenuItem.Render(entry.label))
		}

		out = append(out, floating{
			content: zone.Mark(m.id+"menubox", styles.MenuStyle.Render(strings.Join(entries, "\n"))),
			x:       max(width-16, 0),
			y:       m.top + 1,
		})
	}

	// The tooltip is not zone marked so it never intercepts the pointer.
	if state == sidebar.Collapsed && m.hoverPath != "" {
		if item, found := m.tree.Find(m.hoverPath); found {
			out = append(out, floating{content: styles.Tooltip.Render(item.Label), x: width + 1, y: m.hoverY})
		}
	}

	return out
}
