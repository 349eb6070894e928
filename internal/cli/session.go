package cli

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/servicelog/internal/config"
	"github.com/roach88/servicelog/internal/logging"
	"github.com/roach88/servicelog/internal/record"
	"github.com/roach88/servicelog/internal/registry"
	"github.com/roach88/servicelog/internal/sheet"
	"github.com/roach88/servicelog/internal/store"
	"github.com/roach88/servicelog/internal/validate"
)

// session is the per-command state: merged config, open store and the
// registry over it.
type session struct {
	cfg   *config.Config
	store *store.Store
	svc   *registry.Service
	out   *OutputFormatter
}

// newFormatter builds the formatter for cmd's writers.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadConfig merges config sources and flag overrides, then validates.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	path := opts.ConfigPath
	var loadOpts []config.LoadOption
	if path == "" {
		path = config.DefaultPath
	} else {
		loadOpts = append(loadOpts, config.Required())
	}

	cfg, err := config.Load(path, loadOpts...)
	if err != nil {
		return nil, err
	}

	if opts.Database != "" {
		cfg.Database.Filename = opts.Database
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads config, sets up logging and opens the store.
// On failure the error has already been rendered.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fail(out, ErrCodeConfig, ExitCommandError, "invalid configuration", err, nil)
	}

	logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	out.VerboseLog("database: %s", cfg.Database.Filename)

	st, err := store.Open(cfg.Database.Filename, store.WithActor(opts.Actor))
	if err != nil {
		return nil, fail(out, ErrCodePersistence, ExitCommandError, "failed to open database", err, nil)
	}
	slog.Debug("database opened", "path", cfg.Database.Filename, "actor", st.Actor())

	check := validate.New(validate.WithStrict(cfg.Validation.StrictIncidentFields))
	return &session{
		cfg:   cfg,
		store: st,
		svc:   registry.New(st, registry.WithValidator(check)),
		out:   out,
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// fail renders err and returns it as an ExitError.
func fail(out *OutputFormatter, code string, exit int, message string, err error, details any) error {
	if err == nil {
		_ = out.Error(code, message, details)
		return NewExitError(exit, message)
	}
	_ = out.Error(code, message+": "+err.Error(), details)
	return WrapExitError(exit, message, err)
}

// failErr classifies err and renders it.
func (s *session) failErr(message string, err error) error {
	code, exit, details := classify(err)
	return fail(s.out, code, exit, message, err, details)
}

// classify maps domain errors to a JSON error code, an exit code and
// structured details.
func classify(err error) (code string, exit int, details any) {
	var (
		ve *validate.Error
		he *sheet.HeaderError
	)
	switch {
	case errors.As(err, &ve):
		return ErrCodeValidation, ExitFailure, map[string]any{
			"row":    ve.Row,
			"field":  ve.Field,
			"reason": string(ve.Reason),
			"value":  ve.Value,
		}
	case errors.As(err, &he):
		return ErrCodeHeaderMismatch, ExitFailure, map[string]any{
			"column": he.Column,
			"want":   he.Want,
			"got":    he.Got,
		}
	case store.IsNotFound(err):
		return ErrCodeNotFound, ExitFailure, nil
	case errors.Is(err, registry.ErrIdentifierExists):
		return ErrCodeIdentifierExists, ExitFailure, nil
	case errors.Is(err, record.ErrUnknownField):
		return ErrCodeUnknownField, ExitFailure, nil
	case errors.Is(err, registry.ErrInvalidUser):
		return ErrCodeInvalidUser, ExitFailure, nil
	case errors.Is(err, store.ErrInvalidDate):
		return ErrCodeInvalidDate, ExitFailure, nil
	case store.IsPersistence(err):
		return ErrCodePersistence, ExitCommandError, nil
	default:
		return ErrCodeGeneric, ExitCommandError, nil
	}
}

// parseID parses a positional record or user id.
func (s *session) parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fail(s.out, ErrCodeUsage, ExitCommandError, "invalid id "+strconv.Quote(arg), nil, nil)
	}
	return id, nil
}

// withSession opens a session, runs fn and closes the session.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, s)
}
