package sidebar_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/stretchr/testify/require"
)

var (
	dismissButton = document.NewElement("drawer-dismiss")
	mastersGroup  = document.NewElement("drawer-group-Masters")
	productsItem  = document.NewElement("drawer-item-/masters/products")
)

func newTestDrawer(doc *document.Document) *sidebar.Drawer {
	drawer := sidebar.NewDrawer(doc, sidebar.DrawerOptions{
		WidthPx:    288,
		FocusDelay: time.Millisecond,
		Transition: time.Millisecond,
	}, func(x int, _ int) bool { return x < 36 })
	drawer.SetFocusables([]document.Element{dismissButton, mastersGroup, productsItem})

	return drawer
}

func openDrawer(t *testing.T, doc *document.Document) *sidebar.Drawer {
	t.Helper()

	drawer := newTestDrawer(doc)
	drain(drawer, drawer.Open())
	require.Equal(t, sidebar.DrawerOpen, drawer.Phase())

	return drawer
}

func requireReleased(t *testing.T, doc *document.Document, drawer *sidebar.Drawer) {
	t.Helper()

	require.False(t, drawer.IsOpen())
	require.False(t, doc.ScrollLocked())
	require.Equal(t, 0, doc.KeyListenerCount())
	require.Equal(t, 0, doc.MouseListenerCount())
	require.Equal(t, sidebar.Feedback{}, drawer.Feedback())
	require.False(t, drawer.Gesture().Dragging())
}

func TestDrawerLifecycle(t *testing.T) {
	doc := document.New()
	drawer := newTestDrawer(doc)
	require.Equal(t, sidebar.DrawerClosed, drawer.Phase())

	cmd := drawer.Open()
	require.Equal(t, sidebar.DrawerOpening, drawer.Phase())
	require.True(t, doc.ScrollLocked())
	require.Nil(t, drawer.Open())

	drain(drawer, cmd)
	require.Equal(t, sidebar.DrawerOpen, drawer.Phase())
	require.True(t, doc.IsFocused(dismissButton.ID()))

	cmd = drawer.Close(sidebar.CloseButton)
	require.Equal(t, sidebar.DrawerClosing, drawer.Phase())
	requireReleased(t, doc, drawer)
	_, focused := doc.ActiveElement()
	require.False(t, focused)

	drain(drawer, cmd)
	require.Equal(t, sidebar.DrawerClosed, drawer.Phase())
}

func TestDrawerCloseCancelsPendingFocus(t *testing.T) {
	doc := document.New()
	drawer := newTestDrawer(doc)

	openCmd := drawer.Open()
	closeCmd := drawer.Close(sidebar.CloseEscape)

	drain(drawer, openCmd)
	_, focused := doc.ActiveElement()
	require.False(t, focused)
	require.Equal(t, sidebar.DrawerClosing, drawer.Phase())

	drain(drawer, closeCmd)
	require.Equal(t, sidebar.DrawerClosed, drawer.Phase())
}

func TestDrawerFocusTrap(t *testing.T) {
	doc := document.New()
	drawer := openDrawer(t, doc)
	require.Equal(t, 0, drawer.FocusedIndex())

	handled, _ := doc.DispatchKey(keyPress("shift+tab"))
	require.True(t, handled)
	require.True(t, doc.IsFocused(productsItem.ID()))

	handled, _ = doc.DispatchKey(keyPress("tab"))
	require.True(t, handled)
	require.True(t, doc.IsFocused(dismissButton.ID()))

	doc.DispatchKey(keyPress("tab"))
	require.True(t, doc.IsFocused(mastersGroup.ID()))
}

func TestDrawerCloseReasons(t *testing.T) {
	cases := []struct {
		name   string
		reason sidebar.CloseReason
		close  func(doc *document.Document, drawer *sidebar.Drawer) tea.Cmd
	}{
		{
			name:   "escape",
			reason: sidebar.CloseEscape,
			close: func(doc *document.Document, _ *sidebar.Drawer) tea.Cmd {
				_, cmd := doc.DispatchKey(keyPress("esc"))

				return cmd
			},
		},
		{
			name:   "overlay",
			reason: sidebar.CloseOverlay,
			close: func(doc *document.Document, _ *sidebar.Drawer) tea.Cmd {
				_, cmd := doc.DispatchMouse(tea.MouseMsg{X: 60, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

				return cmd
			},
		},
		{
			name:   "drag",
			reason: sidebar.CloseDrag,
			close: func(doc *document.Document, _ *sidebar.Drawer) tea.Cmd {
				doc.DispatchMouse(tea.MouseMsg{X: 30, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
				doc.DispatchMouse(tea.MouseMsg{X: 25, Y: 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
				_, cmd := doc.DispatchMouse(tea.MouseMsg{X: 21, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

				return cmd
			},
		},
		{
			name:   "navigation",
			reason: sidebar.CloseNavigation,
			close: func(_ *document.Document, drawer *sidebar.Drawer) tea.Cmd {
				return drawer.Navigate()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := document.New()
			drawer := openDrawer(t, doc)

			cmd := tc.close(doc, drawer)
			require.NotNil(t, cmd)
			require.Equal(t, tc.reason, drawer.LastCloseReason())
			requireReleased(t, doc, drawer)

			drain(drawer, cmd)
			require.Equal(t, sidebar.DrawerClosed, drawer.Phase())
		})
	}
}

func TestDrawerDragThreshold(t *testing.T) {
	doc := document.New()
	drawer := openDrawer(t, doc)

	drawer.PointerDown(280)
	feedback := drawer.PointerMove(209)
	require.InDelta(t, -71, feedback.TranslateX, 0.0001)
	require.InDelta(t, 1-0.5*71.0/200.0, feedback.Opacity, 0.0001)
	require.Nil(t, drawer.PointerUp(209))
	require.True(t, drawer.IsOpen())
	require.Equal(t, sidebar.Feedback{}, drawer.Feedback())

	drawer.PointerDown(280)
	drawer.PointerMove(250)
	cmd := drawer.PointerUp(208)
	require.NotNil(t, cmd)
	require.False(t, drawer.IsOpen())
	require.Equal(t, sidebar.CloseDrag, drawer.LastCloseReason())
}

func TestDrawerRightwardDragIgnored(t *testing.T) {
	doc := document.New()
	drawer := openDrawer(t, doc)

	drawer.PointerDown(100)
	feedback := drawer.PointerMove(180)
	require.InDelta(t, 0, feedback.TranslateX, 0.0001)
	require.InDelta(t, 1, feedback.Opacity, 0.0001)
	require.Nil(t, drawer.PointerUp(180))
	require.True(t, drawer.IsOpen())
}

func TestDrawerCloseMidDragResetsFeedback(t *testing.T) {
	doc := document.New()
	drawer := openDrawer(t, doc)

	drawer.PointerDown(280)
	drawer.PointerMove(240)
	require.True(t, drawer.Feedback().Applied)

	drawer.Navigate()
	requireReleased(t, doc, drawer)

	// A release arriving after the drawer closed is ignored.
	require.Nil(t, drawer.PointerUp(0))
}

func TestDrawerClickWithoutMovementPassesThrough(t *testing.T) {
	doc := document.New()
	drawer := openDrawer(t, doc)

	press := tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	handled, _ := doc.DispatchMouse(press)
	require.False(t, handled)
	handled, _ = doc.DispatchMouse(release)
	require.False(t, handled)
	require.True(t, drawer.IsOpen())
}

func TestDrawerRepeatedOpenCloseDoesNotLeak(t *testing.T) {
	doc := document.New()
	drawer := newTestDrawer(doc)

	for range 20 {
		drawer.Open()
		require.Equal(t, 1, doc.KeyListenerCount())
		require.Equal(t, 1, doc.MouseListenerCount())
		drawer.Close(sidebar.CloseOverlay)
	}

	requireReleased(t, doc, drawer)
}

func TestDrawerToggle(t *testing.T) {
	doc := document.New()
	drawer := newTestDrawer(doc)

	drain(drawer, drawer.Toggle())
	require.Equal(t, sidebar.DrawerOpen, drawer.Phase())
	require.True(t, doc.ScrollLocked())

	drain(drawer, drawer.Toggle())
	require.Equal(t, sidebar.DrawerClosed, drawer.Phase())
	require.Equal(t, sidebar.CloseButton, drawer.LastCloseReason())
	requireReleased(t, doc, drawer)
}
