package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/servicelog/internal/sheet"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	From       string
	To         string
	Since      string
	Dir        string
	Importable bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import records from a spreadsheet",
		Long: `Import every row of a spreadsheet in one batch.

Row 1 must carry the record header without the ID column. A header
mismatch or any invalid row rejects the whole file; nothing is inserted.

Exit codes:
  0 - All rows imported
  1 - Header mismatch or invalid row
  2 - Command error (file unreadable, database failure)

Examples:
  servicelog import registros.xlsx
  servicelog import registros.xlsx --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				res, err := s.svc.Import(ctx, args[0])
				if err != nil {
					return s.failErr("import rejected", err)
				}
				return s.out.Render(res, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Imported %d record(s)\n", res.Count)
					if res.Batch != "" {
						fmt.Fprintf(w, "  Batch: %s\n", res.Batch)
					}
				})
			})
		},
	}
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records to a spreadsheet",
		Long: `Export records to an .xlsx file named after the export mode.

With no flags every record is exported to "Extracción global.xlsx".
--from and --to select an inclusive entry date range; --since selects
records from a date onward. Dates are dd-mm-yyyy.

Examples:
  servicelog export
  servicelog export --from 01-01-2024 --to 31-01-2024 --dir ./out
  servicelog export --since 01-02-2024 --importable`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runExport(ctx, s, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "range start dd-mm-yyyy")
	cmd.Flags().StringVar(&opts.To, "to", "", "range end dd-mm-yyyy")
	cmd.Flags().StringVar(&opts.Since, "since", "", "export records from this date onward")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "output directory (overrides config export.dir)")
	cmd.Flags().BoolVar(&opts.Importable, "importable", false, "omit the ID column so the file can be imported again")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("from", "since")
	cmd.MarkFlagsMutuallyExclusive("to", "since")

	return cmd
}

func exportMode(opts *ExportOptions) sheet.Mode {
	switch {
	case opts.From != "":
		return sheet.Range(opts.From, opts.To)
	case opts.Since != "":
		return sheet.Since(opts.Since)
	default:
		return sheet.Global()
	}
}

func runExport(ctx context.Context, s *session, opts *ExportOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = s.cfg.Export.Dir
	}

	var writeOpts []sheet.WriteOption
	if opts.Importable {
		writeOpts = append(writeOpts, sheet.WithoutID())
	}

	mode := exportMode(opts)
	s.out.VerboseLog("export mode: %s", mode)

	res, err := s.svc.Export(ctx, mode, dir, writeOpts...)
	if err != nil {
		return s.failErr("export failed", err)
	}
	return s.out.Render(res, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Exported %d record(s) to %s\n", res.Count, res.Path)
	})
}
