package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// InitResult reports the database a session opened.
type InitResult struct {
	Database string `json:"database"`
	Theme    string `json:"theme"`
	Strict   bool   `json:"strict"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database file and schema",
		Long: `Create the database file if missing and bring its schema up to date.

Safe to run on an existing database.

Examples:
  servicelog init
  servicelog init --db ./records.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	return withSession(opts, cmd, func(_ context.Context, s *session) error {
		return renderInit(s)
	})
}

func renderInit(s *session) error {
	result := InitResult{
		Database: s.cfg.Database.Filename,
		Theme:    s.cfg.UI.Theme,
		Strict:   s.cfg.Validation.StrictIncidentFields,
	}
	return s.out.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Database ready: %s\n", result.Database)
		fmt.Fprintf(w, "  Theme: %s\n", result.Theme)
		fmt.Fprintf(w, "  Strict incident fields: %v\n", result.Strict)
	})
}
