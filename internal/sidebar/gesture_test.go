package sidebar_test

import (
	"testing"

	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/stretchr/testify/require"
)

func TestFeedbackFor(t *testing.T) {
	cases := []struct {
		delta     float64
		translate float64
		opacity   float64
	}{
		{delta: 30, translate: 0, opacity: 1},
		{delta: 0, translate: 0, opacity: 1},
		{delta: -100, translate: -100, opacity: 0.75},
		{delta: -200, translate: -200, opacity: 0.5},
		{delta: -400, translate: -400, opacity: 0.5},
	}

	for _, tc := range cases {
		feedback := sidebar.FeedbackFor(tc.delta)
		require.True(t, feedback.Applied)
		require.InDelta(t, tc.translate, feedback.TranslateX, 0.0001)
		require.InDelta(t, tc.opacity, feedback.Opacity, 0.0001)
	}
}

func TestGestureThreshold(t *testing.T) {
	gesture := sidebar.NewGesture(288)
	require.InDelta(t, 72.0, gesture.Threshold(), 0.0001)

	gesture.Start(200)
	gesture.Move(150)
	require.Equal(t, sidebar.OutcomeCommit, gesture.End(128))
	require.False(t, gesture.Dragging())
	require.Equal(t, sidebar.DragSample{}, gesture.Sample())

	gesture.Start(200)
	require.Equal(t, sidebar.OutcomeSpringBack, gesture.End(129))

	gesture.Start(10)
	require.Equal(t, sidebar.OutcomeSpringBack, gesture.End(200))
}

func TestGestureReleaseWithoutStart(t *testing.T) {
	gesture := sidebar.NewGesture(288)
	require.Equal(t, sidebar.Feedback{}, gesture.Move(50))
	require.Equal(t, sidebar.OutcomeNone, gesture.End(0))
	require.False(t, gesture.Dragging())
}
