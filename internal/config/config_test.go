package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leighmacdonald/erp-tui/internal/config"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	loader := config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	conf, err := loader.Read()
	require.NoError(t, err)

	require.Equal(t, "/dashboard", conf.StartPath)
	require.Equal(t, sidebar.DefaultWidths(), conf.Sidebar.Widths())
	require.Equal(t, 100, conf.Sidebar.MobileBreakpointCols)
	require.Equal(t, sidebar.DefaultDrawerOptions(), conf.Sidebar.DrawerOptions())
	require.Equal(t, []string{"ctrl+b"}, conf.Sidebar.Keys.Cycle)
	require.Equal(t, slog.LevelInfo, conf.Level())
}

func TestReadFile(t *testing.T) {
	body := `
log_level: warn
start_path: /finance/invoices
sidebar:
  expanded_width_px: 320
  drawer_width_px: 240
  focus_delay_ms: 10
  keys:
    collapse: ["{"]
`
	path := filepath.Join(t.TempDir(), "erp-tui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	conf, err := config.NewLoader(path, nil).Read()
	require.NoError(t, err)

	require.Equal(t, slog.LevelWarn, conf.Level())
	require.Equal(t, "/finance/invoices", conf.StartPath)
	require.Equal(t, sidebar.Widths{ExpandedPx: 320, CollapsedPx: 72}, conf.Sidebar.Widths())

	opts := conf.Sidebar.DrawerOptions()
	require.Equal(t, 240, opts.WidthPx)
	require.Equal(t, 10*time.Millisecond, opts.FocusDelay)
	require.Equal(t, sidebar.DefaultTransition, opts.Transition)

	keys := conf.Sidebar.KeyMap()
	require.Equal(t, []string{"{"}, keys.Collapse.Keys())
	require.Equal(t, []string{"]"}, keys.Expand.Keys())
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erp-tui.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o600))

	loader := config.NewLoader(path, nil)
	conf, err := loader.Read()
	require.NoError(t, err)

	conf.Debug = true
	conf.Sidebar.CollapsedWidthPx = 80
	require.NoError(t, loader.Write(conf))

	reread, errReread := config.NewLoader(path, nil).Read()
	require.NoError(t, errReread)
	require.True(t, reread.Debug)
	require.Equal(t, slog.LevelDebug, reread.Level())
	require.Equal(t, 80, reread.Sidebar.CollapsedWidthPx)
}

func TestReadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erp-tui.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sidebar: [\n"), 0o600))

	_, err := config.NewLoader(path, nil).Read()
	require.Error(t, err)
}
