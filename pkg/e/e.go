package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyResolved    = errors.New("incident already resolved")
	ErrClosedIncident     = errors.New("incident is closed")
	ErrPrecondition       = errors.New("precondition failed")
	ErrStorage            = errors.New("storage failure")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal error")
	ErrDeadline           = errors.New("deadline exceeded")
	ErrCanceled           = errors.New("context canceled")
	ErrUniqueViolation    = errors.New("unique violation")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrWebHookEmpty       = errors.New("webhook queue is empty")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (v *ValidationError) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, v.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, v.Field, v.Reason)
}

func (v *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsBusinessRule reports whether err is a state machine rejection.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrAlreadyResolved) ||
		errors.Is(err, ErrClosedIncident) ||
		errors.Is(err, ErrPrecondition) ||
		errors.Is(err, ErrConflict)
}

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w: %w", op, ErrStorage, ErrUniqueViolation)
		case "23503", "23514":
			return fmt.Errorf("%s: %w: constraint %s", op, ErrConflict, pgErr.ConstraintName)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrStorage)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
}
