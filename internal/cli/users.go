package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage operators",
		Long: `Manage the flat list of operators that can be assigned to records.

Examples:
  servicelog users add "Ana María" ana
  servicelog users list
  servicelog users update 1 "Ana M" anam
  servicelog users rm 1`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "add <name> <username>",
		Short:         "Add a user",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				u, err := s.svc.AddUser(ctx, args[0], args[1])
				if err != nil {
					return s.failErr("failed to add user", err)
				}
				return s.out.Render(u, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Added user %d (%s)\n", u.ID, u.Username)
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List users",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				users, err := s.svc.Users(ctx)
				if err != nil {
					return s.failErr("failed to list users", err)
				}
				return s.out.Render(users, func(w io.Writer) { writeUsers(w, users) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "update <id> <name> <username>",
		Short:         "Update a user",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				id, err := s.parseID(args[0])
				if err != nil {
					return err
				}
				u, err := s.svc.UpdateUser(ctx, id, args[1], args[2])
				if err != nil {
					return s.failErr("failed to update user", err)
				}
				return s.out.Render(u, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Updated user %d\n", u.ID)
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rm <id>",
		Short:         "Remove a user",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				id, err := s.parseID(args[0])
				if err != nil {
					return err
				}
				if err := s.svc.RemoveUser(ctx, id); err != nil {
					return s.failErr("failed to remove user", err)
				}
				return s.out.Render(map[string]int64{"id": id}, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Removed user %d\n", id)
				})
			})
		},
	})

	return cmd
}
