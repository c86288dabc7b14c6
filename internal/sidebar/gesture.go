package sidebar

import "math"

const (
	// commitRatio is the share of the drawer width a drag must cover to dismiss it.
	commitRatio = 0.25
	// fadeDistancePx is the drag distance at which the drawer reaches its minimum opacity.
	fadeDistancePx = 200.0
	minOpacity     = 0.5
)

// DragSample is the state of a single press, drag and release interaction.
type DragSample struct {
	StartX   float64
	CurrentX float64
	Active   bool
}

func (s DragSample) Delta() float64 {
	return s.CurrentX - s.StartX
}

// Feedback is the visual offset applied to the drawer while dragging. A zero value means
// no inline style is applied at all.
type Feedback struct {
	TranslateX float64
	Opacity    float64
	Applied    bool
}

// FeedbackFor derives the drawer transform from a horizontal drag delta. Rightward drags
// do not move the drawer.
func FeedbackFor(delta float64) Feedback {
	if delta >= 0 {
		return Feedback{TranslateX: 0, Opacity: 1, Applied: true}
	}

	return Feedback{
		TranslateX: delta,
		Opacity:    1 - minOpacity*math.Min(math.Abs(delta)/fadeDistancePx, 1),
		Applied:    true,
	}
}

// Outcome is the result of releasing a drag.
type Outcome int

const (
	// OutcomeNone means there was no drag in progress.
	OutcomeNone Outcome = iota
	// OutcomeSpringBack returns the drawer to rest.
	OutcomeSpringBack
	// OutcomeCommit dismisses the drawer.
	OutcomeCommit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSpringBack:
		return "spring-back"
	case OutcomeCommit:
		return "commit"
	default:
		return "none"
	}
}

// Gesture tracks a drag: idle -> dragging -> (commit | spring back) -> idle.
type Gesture struct {
	sample  DragSample
	widthPx float64
}

func NewGesture(drawerWidthPx float64) Gesture {
	return Gesture{widthPx: drawerWidthPx}
}

// Threshold is the leftward distance at which releasing commits.
func (g Gesture) Threshold() float64 {
	return g.widthPx * commitRatio
}

func (g Gesture) Sample() DragSample {
	return g.sample
}

func (g Gesture) Dragging() bool {
	return g.sample.Active
}

func (g *Gesture) Start(x float64) {
	g.sample = DragSample{StartX: x, CurrentX: x, Active: true}
}

// Move updates the drag position, returning the feedback to apply. Moves without a
// matching start produce no feedback.
func (g *Gesture) Move(x float64) Feedback {
	if !g.sample.Active {
		return Feedback{}
	}

	g.sample.CurrentX = x

	return FeedbackFor(g.sample.Delta())
}

// End releases the drag at x and clears the sample.
func (g *Gesture) End(x float64) Outcome {
	if !g.sample.Active {
		g.sample = DragSample{}

		return OutcomeNone
	}

	g.sample.CurrentX = x
	outcome := g.Resolve(g.sample.Delta())
	g.sample = DragSample{}

	return outcome
}

// Resolve applies the commit threshold to a release delta.
func (g Gesture) Resolve(delta float64) Outcome {
	if -delta >= g.Threshold() {
		return OutcomeCommit
	}

	return OutcomeSpringBack
}

func (g *Gesture) Cancel() {
	g.sample = DragSample{}
}
