/*
store.go - Persistence interface for LES records and comparisons

PURPOSE:
  Defines the boundary between the ledger and durable storage. The
  engine is indifferent to the backing medium: the production store is
  SQLite (store/sqlite), tests use the in-memory store (les/store).

CONTRACT:
  - SaveRecord is an upsert keyed by Record.ID.
  - Records returns ALL records in any order; the Ledger sorts.
  - Comparisons returns most-recent-first (CreatedAt desc, insertion
    order on ties).
  - A missing id returns an error satisfying errors.Is(err,
    les.ErrRecordNotFound / les.ErrComparisonNotFound).

There is no locking contract beyond internal thread-safety of each
implementation: the engine is single-user and mutators are expected to be
issued from one logical thread of UI interaction.
*/
package les

import "context"

// Store persists records and comparisons.
type Store interface {
	// SaveRecord inserts or replaces a record by id.
	SaveRecord(ctx context.Context, r Record) error

	// Record returns the record with the given id.
	Record(ctx context.Context, id string) (Record, error)

	// Records returns all records, unordered.
	Records(ctx context.Context) ([]Record, error)

	// DeleteRecord removes a record by id.
	DeleteRecord(ctx context.Context, id string) error

	// SaveComparison appends a comparison.
	SaveComparison(ctx context.Context, c Comparison) error

	// Comparisons returns all comparisons, most recent first.
	Comparisons(ctx context.Context) ([]Comparison, error)

	// DeleteComparison removes a comparison by id.
	DeleteComparison(ctx context.Context, id string) error

	// DeleteComparisonsFor removes every comparison that references the
	// record id as either endpoint. Used by cascade-on-delete.
	DeleteComparisonsFor(ctx context.Context, recordID string) error
}
