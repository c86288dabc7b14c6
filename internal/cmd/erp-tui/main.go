package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/dustin/go-humanize"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/erp-tui/internal/config"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/store"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	ephemeral      bool
	rootCmd        = &cobra.Command{
		Use:   "erp-tui",
		Short: "ERP administration TUI",
		Long:  `erp-tui - A terminal administration shell for ERP back office data`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about erp-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	stateCmd = &cobra.Command{
		Use:   "state",
		Short: "Inspect remembered ui state",
		Args:  cobra.NoArgs,
	}

	stateShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the remembered navigation panel state",
		Args:  cobra.NoArgs,
		RunE:  stateShow,
	}

	stateResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the navigation panel state",
		Long:  "Forget the navigation panel state. The next start shows the panel expanded with every group open.",
		Args:  cobra.NoArgs,
		RunE:  stateReset,
	}
)

var (
	errApp   = errors.New("application error")
	errState = errors.New("failed to access ui state")
	errNoDB  = errors.New("database_path is not set")
)

func main() {
	configPath := config.Path(config.DefaultConfigName + ".yaml")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", configPath, "Config file path")
	rootCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep ui state in memory only")
	stateCmd.AddCommand(stateShowCmd, stateResetCmd)
	rootCmd.AddCommand(versionCmd, stateCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("erp-tui - ERP Terminal UI\n\n")    //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)     //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)      //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)        //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion) //nolint:forbidigo
}

// run is the main entry point of erp-tui.
func run(cmd *cobra.Command, _ []string) error {
	// Make sure our config home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	configLoader := config.NewLoader(cfgFile, configUpdates)
	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return errors.Join(errApp, errConfig)
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, userConfig.Level())
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting erp-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	tree, errTree := loadTree(userConfig.NavPath)
	if errTree != nil {
		return errors.Join(errTree, errApp)
	}

	databasePath := userConfig.DatabasePath
	if ephemeral {
		databasePath = ""
	}

	kv, closer, errKV := openKV(cmd.Context(), databasePath)
	if errKV != nil {
		return errors.Join(errKV, errApp)
	}

	defer closeStore(closer)

	doc := document.New()
	notifier := sidebar.NewNotifier()
	machine := sidebar.NewMachine(
		sidebar.NewPersistence(kv),
		sidebar.NewLayoutSync(doc, userConfig.Sidebar.Widths()),
		notifier)

	configLoader.Watch()

	app := NewApp(userConfig, notifier, configUpdates)
	app.createUI(cmd.Context(), tree, doc, machine, configLoader.Path())

	return app.Start(cmd.Context())
}

func loadTree(navPath string) (nav.Tree, error) {
	if navPath == "" {
		return nav.Default(), nil
	}

	return nav.Load(navPath)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openKV opens the sqlite backed state store. An empty path keeps state in memory.
func openKV(ctx context.Context, databasePath string) (store.KV, io.Closer, error) {
	if databasePath == "" {
		slog.Info("Using in memory ui state")

		return store.NewMemoryKV(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(databasePath), 0o750); err != nil {
		return nil, nil, errors.Join(err, errState)
	}

	database, errDB := store.Open(ctx, databasePath, true)
	if errDB != nil {
		return nil, nil, errors.Join(errDB, errState)
	}

	return store.NewSQLiteKV(database), database, nil
}

func openStateStore(cmd *cobra.Command) (store.KV, io.Closer, error) {
	configLoader := config.NewLoader(cfgFile, nil)
	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return nil, nil, errors.Join(errConfig, errState)
	}

	if userConfig.DatabasePath == "" {
		return nil, nil, errors.Join(errNoDB, errState)
	}

	return openKV(cmd.Context(), userConfig.DatabasePath)
}

func closeStore(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Error("Error closing database", slog.String("error", err.Error()))
	}
}

func stateShow(cmd *cobra.Command, _ []string) error {
	kv, closer, err := openStateStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(closer)

	values, errList := kv.List(cmd.Context(), sidebar.KeyPrefix)
	if errList != nil {
		return errors.Join(errList, errState)
	}

	if len(values) == 0 {
		cmd.Println("No ui state remembered, the panel starts expanded.")

		return nil
	}

	if database, ok := closer.(*sql.DB); ok {
		version, dirty, errVersion := store.SchemaVersion(database)
		if errVersion != nil {
			return errors.Join(errVersion, errState)
		}

		cmd.Printf("schema version %d (dirty: %t)\n", version, dirty)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		cmd.Printf("%-32s %s\n", key, values[key])
	}

	return nil
}

func stateReset(cmd *cobra.Command, _ []string) error {
	kv, closer, err := openStateStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(closer)

	removed, errDelete := kv.DeletePrefix(cmd.Context(), sidebar.KeyPrefix)
	if errDelete != nil {
		return errors.Join(errDelete, errState)
	}

	cmd.Printf("Removed %s remembered values\n", humanize.Comma(removed))

	return nil
}
