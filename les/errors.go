/*
errors.go - Centralized error types for the LES ledger

PURPOSE:
  All sentinel errors in one place. The calculators never error on
  numeric input (coercion, not exceptions); these errors cover the
  repository surface only: missing records, missing comparisons, and
  persistence failures bubbled up from the store.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, les.ErrRecordNotFound) { ... 404 ... }
*/
package les

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when a record id has no match.
	ErrRecordNotFound = errors.New("record not found")

	// ErrComparisonNotFound is returned when a comparison id has no match,
	// or when LatestComparison is called on an empty comparison list.
	ErrComparisonNotFound = errors.New("comparison not found")

	// ErrInsufficientHistory is returned when a trend is requested with
	// fewer than two source records. Trend classification on a single
	// point is undefined and must not be attempted.
	ErrInsufficientHistory = errors.New("insufficient history for trend analysis")

	// ErrStoreFailed wraps persistence-level failures.
	ErrStoreFailed = errors.New("store operation failed")
)

// NotFoundError carries the id that missed.
type NotFoundError struct {
	Kind string // "record" or "comparison"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Kind == "comparison" {
		return ErrComparisonNotFound
	}
	return ErrRecordNotFound
}

// IsNotFound reports whether the error indicates a missing record or
// comparison.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrComparisonNotFound)
}
