package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName     = "erp-tui"
	DefaultConfigName = "erp-tui"
	DefaultDBName     = "erp-tui.db"
	DefaultLogName    = "erp-tui.log"
	EnvPrefix         = "erptui"

	DefaultMobileBreakpointCols = 100
)

type Config struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	// DatabasePath is where ui state is remembered between sessions. An empty value keeps
	// state in memory for the lifetime of the process only.
	DatabasePath string `mapstructure:"database_path"`
	// NavPath optionally points to a YAML navigation tree replacing the built in menu.
	NavPath   string  `mapstructure:"nav_path"`
	StartPath string  `mapstructure:"start_path"`
	Sidebar   Sidebar `mapstructure:"sidebar"`
}

type Sidebar struct {
	ExpandedWidthPx  int `mapstructure:"expanded_width_px"`
	CollapsedWidthPx int `mapstructure:"collapsed_width_px"`
	DrawerWidthPx    int `mapstructure:"drawer_width_px"`
	// MobileBreakpointCols is the terminal width below which the drawer replaces the rail.
	MobileBreakpointCols int  `mapstructure:"mobile_breakpoint_cols"`
	FocusDelayMs         int  `mapstructure:"focus_delay_ms"`
	TransitionMs         int  `mapstructure:"transition_ms"`
	Keys                 Keys `mapstructure:"keys"`
}

type Keys struct {
	Cycle    []string `mapstructure:"cycle"`
	Collapse []string `mapstructure:"collapse"`
	Expand   []string `mapstructure:"expand"`
}

func (s Sidebar) Widths() sidebar.Widths {
	widths := sidebar.DefaultWidths()
	if s.ExpandedWidthPx > 0 {
		widths.ExpandedPx = s.ExpandedWidthPx
	}
	if s.CollapsedWidthPx > 0 {
		widths.CollapsedPx = s.CollapsedWidthPx
	}

	return widths
}

func (s Sidebar) DrawerOptions() sidebar.DrawerOptions {
	opts := sidebar.DefaultDrawerOptions()
	if s.DrawerWidthPx > 0 {
		opts.WidthPx = s.DrawerWidthPx
	}
	if s.FocusDelayMs > 0 {
		opts.FocusDelay = time.Duration(s.FocusDelayMs) * time.Millisecond
	}
	if s.TransitionMs > 0 {
		opts.Transition = time.Duration(s.TransitionMs) * time.Millisecond
	}

	return opts
}

func (s Sidebar) KeyMap() sidebar.KeyMap {
	return sidebar.NewKeyMap(s.Keys.Cycle, s.Keys.Collapse, s.Keys.Expand)
}

// Level resolves the configured log level, debug taking precedence.
func (c Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// DataPath points to the filename under $XDG_DATA_HOME.
func DataPath(name string) string {
	dataDir, found := os.LookupEnv("DATA_DIR")
	if found && dataDir != "" {
		return path.Join(dataDir, name)
	}

	return path.Join(xdg.DataHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
