package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logs",
		Short:         "Show the audit trail",
		Long:          `Show one line per change made to the database, oldest first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				entries, err := s.store.ListLogs(ctx)
				if err != nil {
					return s.failErr("failed to list logs", err)
				}
				return s.out.Render(entries, func(w io.Writer) { writeLogs(w, entries) })
			})
		},
	}
}
