package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader creates a loader reading from configFile, or from the default search paths when empty.
func NewLoader(configFile string, changes chan<- Config) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("debug", false)
	loader.SetDefault("log_level", "info")
	loader.SetDefault("database_path", DataPath(DefaultDBName))
	loader.SetDefault("nav_path", "")
	loader.SetDefault("start_path", "/dashboard")
	loader.SetDefault("sidebar.expanded_width_px", 264)
	loader.SetDefault("sidebar.collapsed_width_px", 72)
	loader.SetDefault("sidebar.drawer_width_px", 288)
	loader.SetDefault("sidebar.mobile_breakpoint_cols", DefaultMobileBreakpointCols)
	loader.SetDefault("sidebar.focus_delay_ms", 50)
	loader.SetDefault("sidebar.transition_ms", 200)
	loader.SetDefault("sidebar.keys.cycle", []string{"ctrl+b"})
	loader.SetDefault("sidebar.keys.collapse", []string{"["})
	loader.SetDefault("sidebar.keys.expand", []string{"]"})
	loader.SetConfigType("yaml")
	if configFile != "" {
		loader.SetConfigFile(configFile)
	} else {
		loader.SetConfigName(DefaultConfigName)
		loader.AddConfigPath(Path(""))
		loader.AddConfigPath(".")
	}
	loader.SetEnvPrefix(EnvPrefix)
	loader.AutomaticEnv()

	return &loader
}

// Watch starts forwarding on-disk config changes to the changes channel.
func (cl *Loader) Watch() {
	if cl.changes == nil {
		return
	}

	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) && !in.Has(fsnotify.Create) {
		return
	}

	slog.Debug("External config reload triggered", slog.String("file", in.Name))
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

func (cl *Loader) Write(config Config) error {
	cl.Set("debug", config.Debug)
	cl.Set("log_level", config.LogLevel)
	cl.Set("database_path", config.DatabasePath)
	cl.Set("nav_path", config.NavPath)
	cl.Set("start_path", config.StartPath)
	cl.Set("sidebar.expanded_width_px", config.Sidebar.ExpandedWidthPx)
	cl.Set("sidebar.collapsed_width_px", config.Sidebar.CollapsedWidthPx)
	cl.Set("sidebar.drawer_width_px", config.Sidebar.DrawerWidthPx)
	cl.Set("sidebar.mobile_breakpoint_cols", config.Sidebar.MobileBreakpointCols)
	cl.Set("sidebar.focus_delay_ms", config.Sidebar.FocusDelayMs)
	cl.Set("sidebar.transition_ms", config.Sidebar.TransitionMs)
	cl.Set("sidebar.keys.cycle", config.Sidebar.Keys.Cycle)
	cl.Set("sidebar.keys.collapse", config.Sidebar.Keys.Collapse)
	cl.Set("sidebar.keys.expand", config.Sidebar.Keys.Expand)

	if err := cl.WriteConfig(); err != nil {
		if err := cl.SafeWriteConfig(); err != nil {
			return errors.Join(err, errConfigWrite)
		}
	}

	return nil
}

// Read loads the config file, if any, applying defaults and environment overrides.
// A missing config file is not an error.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && cl.ConfigFileUsed() != "" && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
