package main

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/erp-tui/internal/config"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"golang.org/x/sync/errgroup"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the main application container. Very little logic is contained within this struct. Its mostly
// responsible for routing panel notifications and config updates into the UI.
type App struct {
	ui            UI
	config        config.Config
	notifier      *sidebar.Notifier
	uiUpdates     chan any
	configUpdates chan config.Config
}

func NewApp(conf config.Config, notifier *sidebar.Notifier, configUpdates chan config.Config) *App {
	return &App{
		config:        conf,
		notifier:      notifier,
		configUpdates: configUpdates,
		uiUpdates:     make(chan any),
	}
}

// Start runs the UI along with the goroutines feeding it. It returns once the UI exits or
// the context is cancelled.
func (app *App) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		app.eventForwarder(ctx)

		return nil
	})

	group.Go(func() error {
		app.configForwarder(ctx)

		return nil
	})

	group.Go(func() error {
		app.uiSender(ctx)

		return nil
	})

	if app.ui != nil {
		group.Go(func() error {
			// The forwarders only stop once the ui is gone.
			defer cancel()

			return app.ui.Run()
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// eventForwarder sends every panel notification to the ui so observers like the status bar
// can react to it.
func (app *App) eventForwarder(ctx context.Context) {
	eventChan := make(chan sidebar.Event, 10)
	unsubscribe := app.notifier.ListenFor(sidebar.Any, eventChan)
	defer unsubscribe()

	for {
		select {
		case evt := <-eventChan:
			app.queue(ctx, evt)
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) configForwarder(ctx context.Context) {
	for {
		select {
		case conf := <-app.configUpdates:
			slog.Info("Config changed on disk")
			app.config = conf
			app.queue(ctx, conf)
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) queue(ctx context.Context, msg any) {
	select {
	case app.uiUpdates <- msg:
	case <-ctx.Done():
	}
}

// uiSender handles forwarding all events to the UI.
func (app *App) uiSender(ctx context.Context) {
	for {
		select {
		case msg := <-app.uiUpdates:
			if app.ui != nil {
				app.ui.Send(msg)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) createUI(ctx context.Context, tree nav.Tree, doc *document.Document, machine *sidebar.Machine, configPath string) UI {
	if app.ui == nil {
		app.ui = ui.New(ctx, app.config, tree, doc, machine, BuildVersion, configPath)
	}

	return app.ui
}
