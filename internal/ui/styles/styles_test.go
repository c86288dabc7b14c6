package styles_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/erp-tui/internal/ui/styles"
	"github.com/stretchr/testify/require"
)

func TestFade(t *testing.T) {
	fg := lipgloss.Color("#ffffff")
	bg := lipgloss.Color("#000000")

	require.Equal(t, fg, styles.Fade(fg, bg, 1))
	require.Equal(t, bg, styles.Fade(fg, bg, 0))
	require.NotEqual(t, fg, styles.Fade(fg, bg, 0.5))
	require.NotEqual(t, bg, styles.Fade(fg, bg, 0.5))

	// Colours that are not hex pass through untouched.
	require.Equal(t, lipgloss.Color("205"), styles.Fade("205", bg, 0.5))
}
