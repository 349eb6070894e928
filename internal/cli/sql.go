package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewSQLCommand creates the sql command.
func NewSQLCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sql <statement>",
		Short: "Run a raw SQL statement",
		Long: `Run one raw SQL statement against the database.

The statement bypasses record validation. It is logged in the audit
trail as "raw statement".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				if err := s.store.RunRaw(ctx, args[0]); err != nil {
					return s.failErr("statement failed", err)
				}
				return s.out.Render(map[string]string{"result": "ok"}, func(w io.Writer) {
					fmt.Fprintln(w, "✓ Statement executed")
				})
			})
		},
	}
}
