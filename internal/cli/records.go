package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/servicelog/internal/record"
	"github.com/roach88/servicelog/internal/registry"
)

// RecordAddOptions holds flags for the records add command.
type RecordAddOptions struct {
	*RootOptions
	Draft     record.Draft
	Overwrite bool
}

// NewRecordsCommand creates the records command group.
func NewRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Add, query and remove service records",
	}

	cmd.AddCommand(newRecordsAddCommand(rootOpts))

	cmd.AddCommand(&cobra.Command{
		Use:           "get <id>",
		Short:         "Show one record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				id, err := s.parseID(args[0])
				if err != nil {
					return err
				}
				rec, err := s.store.GetRecord(ctx, id)
				if err != nil {
					return s.failErr("failed to get record", err)
				}
				return s.out.Render(rec, func(w io.Writer) { writeRecord(w, rec) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List every record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				records, err := s.store.ListRecords(ctx)
				if err != nil {
					return s.failErr("failed to list records", err)
				}
				return s.out.Render(records, func(w io.Writer) { writeRecords(w, records) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "find <field> <value>",
		Short: "Find records by an exact field value",
		Long: `Find records whose field equals value.

field is a column name (identifier, status, operator, ...) or its
spreadsheet header label (Identificador, Estado, ...).

Examples:
  servicelog records find identifier T-1
  servicelog records find Estado INCIDENT`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				field, err := record.ParseField(args[0])
				if err != nil {
					return s.failErr("failed to find records", err)
				}
				records, err := s.store.FindRecordsByField(ctx, field, args[1])
				if err != nil {
					return s.failErr("failed to find records", err)
				}
				return s.out.Render(records, func(w io.Writer) { writeRecords(w, records) })
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rm <id>",
		Short:         "Remove a record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				id, err := s.parseID(args[0])
				if err != nil {
					return err
				}
				if err := s.store.DeleteRecord(ctx, id); err != nil {
					return s.failErr("failed to remove record", err)
				}
				return s.out.Render(map[string]int64{"id": id}, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Removed record %d\n", id)
				})
			})
		},
	})

	return cmd
}

func newRecordsAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and add a record",
		Long: `Validate a record and add it to the database.

If a record with the same identifier exists the command fails unless
--overwrite is given, in which case that record is updated in place.

Incident records (--status INCIDENT) need --field, --calls,
--resolution-date and --resolution-operator.

Examples:
  servicelog records add --identifier T-1 --operator Ana --amount 10.5 --status OK
  servicelog records add --date 02-01-2024 --identifier T-2 --operator Luis \
    --amount 99.99 --status INCIDENT --field billing --calls 3 \
    --resolution-date 05-01-2024 --resolution-operator Ana`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runRecordsAdd(ctx, s, opts)
			})
		},
	}

	d := &opts.Draft
	cmd.Flags().StringVar(&d.EntryDate, "date", "", "entry date dd-mm-yyyy (default today)")
	cmd.Flags().StringVar(&d.Operator, "operator", "", "operator name")
	cmd.Flags().StringVar(&d.Identifier, "identifier", "", "record identifier")
	cmd.Flags().StringVar(&d.Amount, "amount", "0", "amount")
	cmd.Flags().StringVar(&d.Status, "status", string(record.StatusEmpty), "status (--|OK|INCIDENT|KO)")
	cmd.Flags().StringVar(&d.Field, "field", "", "incident field")
	cmd.Flags().StringVar(&d.CallCount, "calls", "", "incident call count")
	cmd.Flags().StringVar(&d.ResolutionDate, "resolution-date", "", "incident resolution date dd-mm-yyyy")
	cmd.Flags().StringVar(&d.ResolutionOperator, "resolution-operator", "", "incident resolution operator")
	cmd.Flags().StringVar(&d.Notes, "notes", "", "free-text notes")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "update the existing record with the same identifier")

	return cmd
}

func runRecordsAdd(ctx context.Context, s *session, opts *RecordAddOptions) error {
	d := opts.Draft
	if d.EntryDate == "" {
		d.EntryDate = time.Now().Format("02-01-2006")
	}

	res, err := s.svc.Submit(ctx, d, opts.Overwrite)
	if err != nil {
		return s.failErr("failed to add record", err)
	}
	return s.out.Render(res, func(w io.Writer) { writeSubmit(w, res) })
}

func writeSubmit(w io.Writer, res registry.SubmitResult) {
	if res.Updated {
		fmt.Fprintf(w, "✓ Updated record %d\n", res.ID)
		return
	}
	fmt.Fprintf(w, "✓ Added record %d\n", res.ID)
}
