package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/erp-tui/internal/config"
	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	zone "github.com/lrstanley/bubblezone"
)

var ErrUIExit = errors.New("ui error returned")

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, conf config.Config, tree nav.Tree, doc *document.Document, machine *sidebar.Machine,
	buildVersion string, configPath string,
) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(conf, tree, doc, machine, buildVersion, configPath),
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

// Send delivers panel events and config updates from outside the program loop.
func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
