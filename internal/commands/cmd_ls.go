package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/talldan/revdiff/internal/core/revision"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List revisions",
		UsageText:   "revdiff ls [--json]",
		Description: "Displays a table of all revisions with their ID, title, author, date, and change stats against the previous revision.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

type revisionRow struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Date      time.Time `json:"date"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	revs, err := revision.Load(cfg.RevisionsDir, cfg.Source, cfg.SnapshotGlob)
	if err != nil {
		return fmt.Errorf("load revisions: %w", err)
	}

	rows := make([]revisionRow, 0, len(revs))
	for i, r := range revs {
		var prev revision.Revision
		if i+1 < len(revs) {
			prev = revs[i+1]
		}
		additions, deletions := revision.Compare(prev, r).Stats()
		rows = append(rows, revisionRow{
			ID:        r.ID,
			Title:     r.Title,
			Author:    r.Author,
			Date:      r.Date,
			Additions: additions,
			Deletions: deletions,
		})
	}

	if cmd.jsonOutput {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No revisions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tDATE\tCHANGES")
	for _, row := range rows {
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t+%d -%d\n",
			row.ID, row.Title, row.Author, date, row.Additions, row.Deletions)
	}
	return w.Flush()
}
