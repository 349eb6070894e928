// Package registry composes validation, persistence and spreadsheet
// interchange into the operations the command line exposes.
//
// Every record that reaches the store through a Service has passed the
// same validate.Validator, whether it was typed in or imported.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/servicelog/internal/store"
	"github.com/roach88/servicelog/internal/validate"
)

var (
	// ErrIdentifierExists is returned by Submit when a record with the same
	// identifier exists and overwrite was not requested.
	ErrIdentifierExists = errors.New("identifier already exists")

	// ErrInvalidUser is returned when a user fails the struct checks.
	ErrInvalidUser = errors.New("invalid user")
)

// Service runs record and user operations against one store.
type Service struct {
	store *store.Store
	check *validate.Validator
	users *validator.Validate
}

// Option configures a Service.
type Option func(*Service)

// WithValidator replaces the default lenient record validator.
func WithValidator(v *validate.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.check = v
		}
	}
}

// New creates a Service over st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		check: validate.New(),
		users: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// userError flattens validator errors into one ErrInvalidUser.
func userError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidUser, strings.Join(msgs, "; "))
}
