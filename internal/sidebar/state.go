// Package sidebar implements the navigation panel visibility subsystem: the tri-state rail,
// its persisted state, keyboard shortcuts, change notifications and the mobile drawer.
package sidebar

// State is the visibility of the navigation panel. Exactly one value is active at a time.
type State int

const (
	Expanded State = iota
	Collapsed
	Hidden
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Hidden:
		return "hidden"
	case Expanded:
		fallthrough
	default:
		return "expanded"
	}
}

// ParseState decodes a persisted value. Anything other than the three known names is rejected.
func ParseState(value string) (State, bool) {
	switch value {
	case "expanded":
		return Expanded, true
	case "collapsed":
		return Collapsed, true
	case "hidden":
		return Hidden, true
	default:
		return Expanded, false
	}
}

// next returns the following state in the expanded -> collapsed -> hidden cycle.
func (s State) next() State {
	switch s {
	case Expanded:
		return Collapsed
	case Collapsed:
		return Hidden
	default:
		return Expanded
	}
}
