package sidebar

import (
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
)

const (
	DefaultFocusDelay = 50 * time.Millisecond
	DefaultTransition = 200 * time.Millisecond
)

// DrawerPhase is the lifecycle of the mobile drawer: closed -> opening -> open -> closing -> closed.
type DrawerPhase int

const (
	DrawerClosed DrawerPhase = iota
	DrawerOpening
	DrawerOpen
	DrawerClosing
)

func (p DrawerPhase) String() string {
	switch p {
	case DrawerOpening:
		return "opening"
	case DrawerOpen:
		return "open"
	case DrawerClosing:
		return "closing"
	default:
		return "closed"
	}
}

// CloseReason records which path dismissed the drawer.
type CloseReason int

const (
	CloseButton CloseReason = iota
	CloseEscape
	CloseOverlay
	CloseDrag
	CloseNavigation
	CloseDevice
)

func (r CloseReason) String() string {
	switch r {
	case CloseEscape:
		return "escape"
	case CloseOverlay:
		return "overlay"
	case CloseDrag:
		return "drag"
	case CloseNavigation:
		return "navigation"
	case CloseDevice:
		return "device"
	default:
		return "button"
	}
}

// DrawerHost is the document surface the drawer manipulates while open.
type DrawerHost interface {
	Host
	AddMouseListener(fn document.MouseListener) document.ListenerID
	RemoveMouseListener(id document.ListenerID)
	LockScroll()
	UnlockScroll()
	Focus(el document.Element)
	Blur(el document.Element)
}

// HitTest reports whether the cell at x, y lies inside the drawer panel.
type HitTest func(x int, y int) bool

type DrawerOptions struct {
	WidthPx    int
	FocusDelay time.Duration
	Transition time.Duration
}

func DefaultDrawerOptions() DrawerOptions {
	return DrawerOptions{
		WidthPx:    DefaultDrawerWidthPx,
		FocusDelay: DefaultFocusDelay,
		Transition: DefaultTransition,
	}
}

type drawerFocusMsg struct {
	token uint64
}

type drawerTransitionMsg struct {
	token uint64
}

var (
	trapNext = key.NewBinding(key.WithKeys("tab"))
	trapPrev = key.NewBinding(key.WithKeys("shift+tab"))
	dismiss  = key.NewBinding(key.WithKeys("esc"))
)

// Drawer controls the mobile overlay presentation of the panel: its lifecycle, the focus trap,
// the background scroll lock and drag to dismiss.
type Drawer struct {
	host       DrawerHost
	opts       DrawerOptions
	phase      DrawerPhase
	gesture    Gesture
	feedback   Feedback
	inDrawer   HitTest
	focusables []document.Element

	keyListener     document.ListenerID
	mouseListener   document.ListenerID
	installed       bool
	focusToken      uint64
	transitionToken uint64
	lastReason      CloseReason
}

func NewDrawer(host DrawerHost, opts DrawerOptions, inDrawer HitTest) *Drawer {
	if opts.WidthPx <= 0 {
		opts.WidthPx = DefaultDrawerWidthPx
	}

	return &Drawer{
		host:     host,
		opts:     opts,
		gesture:  NewGesture(float64(opts.WidthPx)),
		inDrawer: inDrawer,
	}
}

func (d *Drawer) Phase() DrawerPhase { return d.phase }

// IsOpen is true while opening or open.
func (d *Drawer) IsOpen() bool {
	return d.phase == DrawerOpening || d.phase == DrawerOpen
}

func (d *Drawer) Feedback() Feedback { return d.feedback }

func (d *Drawer) Gesture() Gesture { return d.gesture }

func (d *Drawer) LastCloseReason() CloseReason { return d.lastReason }

func (d *Drawer) Options() DrawerOptions { return d.opts }

// SetOptions applies new sizing and timing. It takes effect for the next interaction.
func (d *Drawer) SetOptions(opts DrawerOptions) {
	if opts.WidthPx <= 0 {
		opts.WidthPx = DefaultDrawerWidthPx
	}

	d.opts = opts
	d.gesture = NewGesture(float64(opts.WidthPx))
}

// SetFocusables sets the focus trap order. The first element is the dismiss control.
func (d *Drawer) SetFocusables(elements []document.Element) {
	d.focusables = elements
}

// Open starts the open transition and schedules moving focus to the dismiss control.
func (d *Drawer) Open() tea.Cmd {
	if d.IsOpen() {
		return nil
	}

	d.phase = DrawerOpening
	d.install()

	d.focusToken++
	d.transitionToken++
	focusToken, transitionToken := d.focusToken, d.transitionToken

	slog.Debug("Drawer opening")

	return tea.Batch(
		tea.Tick(d.opts.FocusDelay, func(_ time.Time) tea.Msg { return drawerFocusMsg{token: focusToken} }),
		tea.Tick(d.opts.Transition, func(_ time.Time) tea.Msg { return drawerTransitionMsg{token: transitionToken} }),
	)
}

// Close dismisses the drawer, releasing the scroll lock and focus trap and cancelling any
// pending focus move or drag in progress.
func (d *Drawer) Close(reason CloseReason) tea.Cmd {
	if !d.IsOpen() {
		return nil
	}

	d.phase = DrawerClosing
	d.lastReason = reason
	d.uninstall()

	d.focusToken++
	d.gesture.Cancel()
	d.feedback = Feedback{}

	d.transitionToken++
	transitionToken := d.transitionToken

	slog.Debug("Drawer closing", slog.String("reason", reason.String()))

	return tea.Tick(d.opts.Transition, func(_ time.Time) tea.Msg { return drawerTransitionMsg{token: transitionToken} })
}

// Toggle opens a closed drawer and closes an open one.
func (d *Drawer) Toggle() tea.Cmd {
	if d.IsOpen() {
		return d.Close(CloseButton)
	}

	return d.Open()
}

// Navigate closes the drawer as a side effect of selecting a navigation item.
func (d *Drawer) Navigate() tea.Cmd {
	return d.Close(CloseNavigation)
}

// Update handles the drawer's scheduled messages. Stale messages are ignored.
func (d *Drawer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case drawerFocusMsg:
		if msg.token != d.focusToken || !d.IsOpen() || len(d.focusables) == 0 {
			return nil
		}
		d.host.Focus(d.focusables[0])
	case drawerTransitionMsg:
		if msg.token != d.transitionToken {
			return nil
		}
		switch d.phase {
		case DrawerOpening:
			d.phase = DrawerOpen
		case DrawerClosing:
			d.phase = DrawerClosed
		case DrawerOpen, DrawerClosed:
		}
	}

	return nil
}

func (d *Drawer) install() {
	if d.installed {
		return
	}

	d.host.LockScroll()
	d.keyListener = d.host.AddKeyListener(d.handleKey)
	d.mouseListener = d.host.AddMouseListener(d.handleMouse)
	d.installed = true
}

func (d *Drawer) uninstall() {
	if !d.installed {
		return
	}

	d.host.UnlockScroll()
	d.host.RemoveKeyListener(d.keyListener)
	d.host.RemoveMouseListener(d.mouseListener)
	d.installed = false

	if active, found := d.host.ActiveElement(); found && d.owns(active) {
		d.host.Blur(active)
	}
}

func (d *Drawer) owns(el document.Element) bool {
	return d.indexOf(el) >= 0
}

func (d *Drawer) indexOf(el document.Element) int {
	if el == nil {
		return -1
	}

	return slices.IndexFunc(d.focusables, func(candidate document.Element) bool {
		return candidate.ID() == el.ID()
	})
}

// handleKey implements escape to close and the tab focus trap.
func (d *Drawer) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, dismiss):
		return true, d.Close(CloseEscape)
	case key.Matches(msg, trapNext):
		d.moveFocus(1)

		return true, nil
	case key.Matches(msg, trapPrev):
		d.moveFocus(-1)

		return true, nil
	default:
		return false, nil
	}
}

func (d *Drawer) moveFocus(step int) {
	count := len(d.focusables)
	if count == 0 {
		return
	}

	var current int
	active, found := d.host.ActiveElement()
	if found {
		current = d.indexOf(active)
	} else {
		current = -1
	}

	var next int
	switch {
	case current < 0 && step > 0:
		next = 0
	case current < 0:
		next = count - 1
	default:
		next = (current + step + count) % count
	}

	d.host.Focus(d.focusables[next])
}

// FocusedIndex returns the trap position of the focused element, or -1.
func (d *Drawer) FocusedIndex() int {
	active, found := d.host.ActiveElement()
	if !found {
		return -1
	}

	return d.indexOf(active)
}

// handleMouse tracks drag to dismiss and closes on presses outside the drawer.
func (d *Drawer) handleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	x := float64(document.CellsToPx(msg.X))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false, nil
		}
		if d.inDrawer != nil && !d.inDrawer(msg.X, msg.Y) {
			return true, d.Close(CloseOverlay)
		}
		// Presses inside the drawer still reach the items so a click without movement selects.
		d.gesture.Start(x)

		return false, nil
	case tea.MouseActionMotion:
		if !d.gesture.Dragging() {
			return false, nil
		}
		d.feedback = d.gesture.Move(x)

		return true, nil
	case tea.MouseActionRelease:
		return d.release(x)
	default:
		return false, nil
	}
}

// PointerDown, PointerMove and PointerUp drive the gesture directly with pixel coordinates.
func (d *Drawer) PointerDown(xPx float64) {
	if !d.IsOpen() {
		return
	}

	d.gesture.Start(xPx)
}

func (d *Drawer) PointerMove(xPx float64) Feedback {
	if !d.gesture.Dragging() {
		return d.feedback
	}

	d.feedback = d.gesture.Move(xPx)

	return d.feedback
}

func (d *Drawer) PointerUp(xPx float64) tea.Cmd {
	_, cmd := d.release(xPx)

	return cmd
}

func (d *Drawer) release(x float64) (bool, tea.Cmd) {
	moved := d.gesture.Dragging() && d.gesture.Sample().StartX != x
	outcome := d.gesture.End(x)
	d.feedback = Feedback{}

	switch outcome {
	case OutcomeCommit:
		return true, d.Close(CloseDrag)
	case OutcomeSpringBack:
		return moved, nil
	case OutcomeNone:
		return false, nil
	default:
		return false, nil
	}
}
