package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/erp-tui/internal/config"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/leighmacdonald/erp-tui/internal/ui/input"
	zone "github.com/lrstanley/bubblezone"
)

const (
	appTitle     = "erp-tui"
	statusTicker = time.Minute
)

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	doc          *document.Document
	machine      *sidebar.Machine
	dispatcher   *sidebar.Dispatcher
	keys         sidebar.KeyMap
	tree         nav.Tree
	header       *headerModel
	panel        *panelModel
	drawer       *drawerModel
	content      *contentModel
	status       *statusBarModel
	help         *helpModel
	startPath    string
	breakpoint   int
	width        int
	height       int
	headerHeight int
	footerHeight int
	mobile       bool
	deviceKnown  bool
	showHelp     bool
}

func newRootModel(conf config.Config, tree nav.Tree, doc *document.Document, machine *sidebar.Machine,
	buildVersion string, configPath string,
) *rootModel {
	keys := conf.Sidebar.KeyMap()
	breakpoint := conf.Sidebar.MobileBreakpointCols
	if breakpoint <= 0 {
		breakpoint = config.DefaultMobileBreakpointCols
	}

	const headerHeight = 1

	return &rootModel{
		doc:          doc,
		machine:      machine,
		dispatcher:   sidebar.NewDispatcher(machine, doc, keys),
		keys:         keys,
		tree:         tree,
		header:       newHeaderModel(doc, tree),
		panel:        newPanelModel(machine, doc, tree, headerHeight),
		drawer:       newDrawerModel(machine, doc, tree, conf.Sidebar.DrawerOptions()),
		content:      newContentModel(doc, tree),
		status:       newStatusBarModel(buildVersion, machine.State()),
		help:         newHelpModel(keys, buildVersion, configPath, conf.DatabasePath),
		startPath:    conf.StartPath,
		breakpoint:   breakpoint,
		headerHeight: headerHeight,
		footerHeight: 1,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(appTitle),
		textinput.Blink,
		navigate(m.startPath),
		tickEvery(statusTicker),
	)
}

func (m *rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	var cmd tea.Cmd

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd = m.setDevice(msg.Width < m.breakpoint)
	case config.Config:
		cmd = m.applyConfig(msg)
	case navigateMsg:
		m.content.setPath(msg.path)
		m.panel.Update(msg)
		m.drawer.Update(msg)
		m.status.Update(msg)
		if m.drawer.drawer.IsOpen() {
			cmd = m.drawer.drawer.Navigate()
		}
	case sidebar.Event:
		m.panel.Update(msg)
		m.drawer.Update(msg)
		m.status.Update(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case tickMsg:
		cmd = tickEvery(statusTicker)
	default:
		cmd = tea.Batch(m.drawer.Update(msg), m.status.Update(msg), m.header.Update(msg))
	}

	m.resize()

	return m, cmd
}

// setDevice switches between the rail and the drawer. The panel shortcuts only listen on
// desktop and an open drawer is dismissed when the terminal grows past the breakpoint.
func (m *rootModel) setDevice(mobile bool) tea.Cmd {
	if m.deviceKnown && mobile == m.mobile {
		return nil
	}

	m.deviceKnown = true
	m.mobile = mobile
	m.status.mobile = mobile

	if mobile {
		m.dispatcher.Unmount()
		m.panel.menuOpen = false

		return nil
	}

	m.dispatcher.Mount()

	return m.drawer.drawer.Close(sidebar.CloseDevice)
}

func (m *rootModel) applyConfig(conf config.Config) tea.Cmd {
	m.machine.SetWidths(conf.Sidebar.Widths())

	m.keys = conf.Sidebar.KeyMap()
	m.dispatcher.SetKeys(m.keys)
	m.help.keys = m.keys

	if !m.drawer.drawer.IsOpen() {
		m.drawer.drawer.SetOptions(conf.Sidebar.DrawerOptions())
	}

	if conf.Sidebar.MobileBreakpointCols > 0 {
		m.breakpoint = conf.Sidebar.MobileBreakpointCols
	}

	slog.Info("Applied updated config")

	if m.width == 0 {
		return nil
	}

	return m.setDevice(m.width < m.breakpoint)
}

func (m *rootModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Document listeners see keys first: the drawer focus trap, then the panel shortcuts.
	if handled, cmd := m.doc.DispatchKey(msg); handled {
		return cmd
	}

	if m.header.typing() {
		switch {
		case key.Matches(msg, input.Default.Back):
			m.header.blurSearch()

			return nil
		case key.Matches(msg, input.Default.Accept):
			return m.header.submit()
		case msg.Type == tea.KeyCtrlC:
			return tea.Quit
		default:
			return m.header.Update(msg)
		}
	}

	if m.mobile && m.drawer.drawer.IsOpen() && key.Matches(msg, input.Default.Accept) {
		if handled, cmd := m.drawer.activateFocused(); handled {
			return cmd
		}
	}

	switch {
	case key.Matches(msg, input.Default.Quit):
		return tea.Quit
	case key.Matches(msg, input.Default.Search):
		m.showHelp = false

		return m.header.focusSearch()
	case key.Matches(msg, input.Default.Help):
		m.showHelp = !m.showHelp

		return nil
	case key.Matches(msg, input.Default.Back):
		m.showHelp = false
		m.panel.menuOpen = false

		return nil
	case m.mobile && key.Matches(msg, m.keys.Cycle):
		return m.toggleDrawer()
	}

	return m.content.Update(msg)
}

func (m *rootModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if handled, cmd := m.doc.DispatchMouse(msg); handled {
		return cmd
	}

	if m.mobile && m.drawer.drawer.Phase() != sidebar.DrawerClosed {
		return m.drawer.Update(msg)
	}

	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		switch {
		case m.header.hamburgerHit(msg):
			return m.hamburger()
		case m.header.searchHit(msg):
			return m.header.focusSearch()
		}
	}

	if tea.MouseEvent(msg).IsWheel() {
		return m.content.Update(msg)
	}

	if m.mobile || m.showHelp {
		return nil
	}

	return m.panel.Update(msg)
}

// hamburger runs the header menu control: the drawer on mobile, the rail otherwise.
func (m *rootModel) hamburger() tea.Cmd {
	if m.mobile {
		return m.toggleDrawer()
	}

	m.machine.ToggleHamburger()

	return nil
}

func (m *rootModel) toggleDrawer() tea.Cmd {
	if !m.drawer.drawer.IsOpen() {
		m.header.blurSearch()
	}

	return m.drawer.toggle()
}

func (m *rootModel) bodyHeight() int {
	return max(m.height-m.headerHeight-m.footerHeight, 0)
}

// contentWidth is the terminal width less the rail width held in the layout variable.
func (m *rootModel) contentWidth() int {
	if m.mobile {
		return m.width
	}

	return max(m.width-m.panel.widthCells(), 0)
}

func (m *rootModel) resize() {
	m.content.setSize(m.contentWidth(), m.bodyHeight())
}

func (m *rootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	bodyHeight := m.bodyHeight()
	header := m.header.View(m.width, appTitle)
	footer := m.status.View(m.width)

	var (
		body  string
		float []floating
	)

	switch {
	case m.showHelp:
		body = m.help.View(m.width, bodyHeight)
	case m.mobile:
		body = m.content.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.panel.View(bodyHeight), m.content.View())
		float = m.panel.floating(bodyHeight)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, header, fitHeight(body, bodyHeight), footer)
	for _, over := range float {
		screen = overlay(screen, over.content, over.x, over.y)
	}

	if m.mobile {
		screen = m.drawer.View(screen, m.height)
	}

	return zone.Scan(screen)
}

// logMsg is useful for debugging events. Tail the log file in the config directory.
func logMsg(inMsg tea.Msg) {
	switch msg := inMsg.(type) {
	case tickMsg:
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			break
		}
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
