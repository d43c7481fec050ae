package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type ValidateCmd struct {
	flags *Flags
}

// NewValidateCmd creates a new validate command.
func NewValidateCmd(flags *Flags) *ValidateCmd {
	return &ValidateCmd{flags: flags}
}

// Register adds the validate command to the application.
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "validate",
		Usage:       "Validate the configuration",
		UsageText:   "revdiff validate",
		Description: "Validates the configuration file and checks that the revisions directory exists.",
		Action:      cmd.run,
	})
	return app
}

func (cmd *ValidateCmd) run(_ context.Context, c *cli.Command) error {
	if err := cmd.flags.Config.ValidateDeep(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Fprintln(c.Root().Writer, "Configuration is valid.")
	return nil
}
