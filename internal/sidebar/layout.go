package sidebar

import "fmt"

// WidthVar is the layout variable holding the current panel width.
const WidthVar = "--sidebar-width"

const (
	DefaultExpandedWidthPx  = 264
	DefaultCollapsedWidthPx = 72
	DefaultDrawerWidthPx    = 288
)

// Widths maps visibility states to panel widths in pixels.
type Widths struct {
	ExpandedPx  int
	CollapsedPx int
}

func DefaultWidths() Widths {
	return Widths{ExpandedPx: DefaultExpandedWidthPx, CollapsedPx: DefaultCollapsedWidthPx}
}

// For returns the panel width for the state. Hidden has no width.
func (w Widths) For(state State) (int, bool) {
	switch state {
	case Expanded:
		return w.ExpandedPx, true
	case Collapsed:
		return w.CollapsedPx, true
	default:
		return 0, false
	}
}

// VarSink receives layout variable writes.
type VarSink interface {
	SetVar(name string, value string)
}

// LayoutSync mirrors the panel width into the layout variable read by dependent layout.
type LayoutSync struct {
	sink   VarSink
	widths Widths
}

func NewLayoutSync(sink VarSink, widths Widths) *LayoutSync {
	return &LayoutSync{sink: sink, widths: widths}
}

// Sync writes the width for state. While hidden the previous value is left in place.
func (l *LayoutSync) Sync(state State) {
	if l == nil || l.sink == nil {
		return
	}

	if px, ok := l.widths.For(state); ok {
		l.sink.SetVar(WidthVar, fmt.Sprintf("%dpx", px))
	}
}

func (l *LayoutSync) SetWidths(widths Widths) {
	l.widths = widths
}

func (l *LayoutSync) Widths() Widths {
	return l.widths
}
