package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/talldan/revdiff/internal/core/eventbus"
	"github.com/talldan/revdiff/internal/core/revision"
	"github.com/talldan/revdiff/internal/tui"
)

type TuiCmd struct {
	flags *Flags

	// flags
	noWatch bool
}

// NewTuiCmd creates the default TUI command.
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root
// command.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "disable live reload when revision files change",
			Sources:     cli.EnvVars("REVDIFF_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("revdiff requires an interactive terminal")
	}

	cfg := cmd.flags.Config
	if err := cfg.ValidateDeep(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	bus := eventbus.New(eventbus.DefaultBuffer)
	eventbus.RegisterLogRouter(bus, log.Logger)

	busCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go bus.Start(busCtx)

	var watcher *revision.Watcher
	if cfg.Watch && !cmd.noWatch {
		w, err := revision.NewWatcher(cfg.RevisionsDir)
		if err != nil {
			log.Warn().Err(err).Msg("live reload disabled, failed to watch revisions dir")
		} else {
			watcher = w
		}
	}

	m := tui.New(tui.Options{
		Config:  cfg,
		Bus:     bus,
		Watcher: watcher,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
