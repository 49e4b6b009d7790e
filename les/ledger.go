/*
ledger.go - The LES record repository

PURPOSE:
  The Ledger owns the canonical record list. It is the ONLY write path:
  every mutation (record add/update/delete, every line-item sub-mutator)
  goes through here, and every path that touches a line-item list
  recomputes totals before the record is persisted.

CRITICAL INVARIANTS:
  1. TOTALS: after any mutator call, Record.Totals equals
     ComputeTotals(lists) exactly (2-dp rounded).
  2. ORDERING: Records() returns pay-date descending. Tie order between
     same-day records is unspecified.
  3. CASCADE: deleting a record removes every comparison referencing it
     as either endpoint.

DESIGN:
  The Ledger is an explicit, injectable repository (constructor takes a
  Store), not ambient global state. Tests construct isolated instances
  over the in-memory store. Updates are merge-style: a caller updating a
  line-item list passes the FULL updated list, never a delta.

SEE ALSO:
  - store.go: persistence boundary
  - diff.go: CompareRecords persists results through this ledger
  - trend.go: Trend reads this ledger's snapshot
*/
package les

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// LEDGER - Injectable repository
// =============================================================================

type Ledger struct {
	store Store

	// Overridable for deterministic tests.
	now   func() time.Time
	newID func() string
}

func NewLedger(store Store) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// =============================================================================
// RECORD MUTATORS
// =============================================================================

// AddRecord assigns ids and timestamps, computes totals, and persists.
// Line items without an id get one generated; ids are unique within the
// owning record but NOT stable across records.
func (l *Ledger) AddRecord(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = l.newID()
	}
	l.assignLineIDs(&r)
	r.RecomputeTotals()
	r.CreatedAt = l.now()
	r.UpdatedAt = r.CreatedAt
	if r.EntryMethod == "" {
		r.EntryMethod = EntryManual
	}
	if err := l.store.SaveRecord(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// RecordUpdate is a partial update. Nil fields are left untouched.
// Line-item lists are full replacements: passing a list recomputes
// totals, so a caller must never pass a delta.
type RecordUpdate struct {
	PayPeriod    *PayPeriod
	Member       *MemberSnapshot
	Entitlements *[]EntitlementLine
	Deductions   *[]DeductionLine
	Allotments   *[]AllotmentLine
	Leave        *[]LeaveBalance
	EntryMethod  *EntryMethod
	IsVerified   *bool
	Notes        *string
}

func (u RecordUpdate) touchesLineItems() bool {
	return u.Entitlements != nil || u.Deductions != nil || u.Allotments != nil
}

// UpdateRecord merges a partial update into the stored record. Totals are
// recomputed only when a line-item list was replaced.
func (l *Ledger) UpdateRecord(ctx context.Context, id string, upd RecordUpdate) (Record, error) {
	r, err := l.store.Record(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if upd.PayPeriod != nil {
		r.PayPeriod = *upd.PayPeriod
	}
	if upd.Member != nil {
		r.Member = *upd.Member
	}
	if upd.Entitlements != nil {
		r.Entitlements = *upd.Entitlements
	}
	if upd.Deductions != nil {
		r.Deductions = *upd.Deductions
	}
	if upd.Allotments != nil {
		r.Allotments = *upd.Allotments
	}
	if upd.Leave != nil {
		r.Leave = *upd.Leave
	}
	if upd.EntryMethod != nil {
		r.EntryMethod = *upd.EntryMethod
	}
	if upd.IsVerified != nil {
		r.IsVerified = *upd.IsVerified
	}
	if upd.Notes != nil {
		r.Notes = *upd.Notes
	}

	if upd.touchesLineItems() {
		l.assignLineIDs(&r)
		r.RecomputeTotals()
	}
	r.UpdatedAt = l.now()

	if err := l.store.SaveRecord(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// DeleteRecord removes the record and cascades to any comparison that
// references it as either endpoint.
func (l *Ledger) DeleteRecord(ctx context.Context, id string) error {
	if err := l.store.DeleteRecord(ctx, id); err != nil {
		return err
	}
	return l.store.DeleteComparisonsFor(ctx, id)
}

// =============================================================================
// RECORD READS
// =============================================================================

func (l *Ledger) Record(ctx context.Context, id string) (Record, error) {
	return l.store.Record(ctx, id)
}

// Records returns all records ordered by pay date descending.
func (l *Ledger) Records(ctx context.Context) ([]Record, error) {
	records, err := l.store.Records(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PayPeriod.PayDate.After(records[j].PayPeriod.PayDate)
	})
	return records, nil
}

// =============================================================================
// LINE-ITEM SUB-MUTATORS
// =============================================================================
// Every sub-mutator reads the current record, builds the new full list,
// and routes through UpdateRecord. The totals invariant cannot be skipped.

func (l *Ledger) AddEntitlement(ctx context.Context, recordID string, line EntitlementLine) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	line.ID = l.newID()
	lines := append(append([]EntitlementLine(nil), r.Entitlements...), line)
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Entitlements: &lines})
}

func (l *Ledger) UpdateEntitlement(ctx context.Context, recordID string, line EntitlementLine) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	lines := append([]EntitlementLine(nil), r.Entitlements...)
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = line
		}
	}
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Entitlements: &lines})
}

func (l *Ledger) RemoveEntitlement(ctx context.Context, recordID, lineID string) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	lines := make([]EntitlementLine, 0, len(r.Entitlements))
	for _, e := range r.Entitlements {
		if e.ID != lineID {
			lines = append(lines, e)
		}
	}
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Entitlements: &lines})
}

func (l *Ledger) AddDeduction(ctx context.Context, recordID string, line DeductionLine) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	line.ID = l.newID()
	lines := append(append([]DeductionLine(nil), r.Deductions...), line)
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Deductions: &lines})
}

func (l *Ledger) UpdateDeduction(ctx context.Context, recordID string, line DeductionLine) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	lines := append([]DeductionLine(nil), r.Deductions...)
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = line
		}
	}
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Deductions: &lines})
}

func (l *Ledger) RemoveDeduction(ctx context.Context, recordID, lineID string) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	lines := make([]DeductionLine, 0, len(r.Deductions))
	for _, d := range r.Deductions {
		if d.ID != lineID {
			lines = append(lines, d)
		}
	}
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Deductions: &lines})
}

func (l *Ledger) AddAllotment(ctx context.Context, recordID string, line AllotmentLine) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	line.ID = l.newID()
	lines := append(append([]AllotmentLine(nil), r.Allotments...), line)
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Allotments: &lines})
}

func (l *Ledger) UpdateAllotment(ctx context.Context, recordID string, line AllotmentLine) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	lines := append([]AllotmentLine(nil), r.Allotments...)
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = line
		}
	}
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Allotments: &lines})
}

func (l *Ledger) RemoveAllotment(ctx context.Context, recordID, lineID string) (Record, error) {
	r, err := l.store.Record(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	lines := make([]AllotmentLine, 0, len(r.Allotments))
	for _, a := range r.Allotments {
		if a.ID != lineID {
			lines = append(lines, a)
		}
	}
	return l.UpdateRecord(ctx, recordID, RecordUpdate{Allotments: &lines})
}

// =============================================================================
// COMPARISONS
// =============================================================================

// CompareRecords diffs two stored records and persists the comparison at
// the head of the most-recent-first list.
func (l *Ledger) CompareRecords(ctx context.Context, previousID, currentID string) (Comparison, error) {
	prev, err := l.store.Record(ctx, previousID)
	if err != nil {
		return Comparison{}, err
	}
	cur, err := l.store.Record(ctx, currentID)
	if err != nil {
		return Comparison{}, err
	}

	c := Compare(prev, cur)
	c.ID = l.newID()
	c.CreatedAt = l.now()
	if err := l.store.SaveComparison(ctx, c); err != nil {
		return Comparison{}, err
	}
	return c, nil
}

func (l *Ledger) Comparisons(ctx context.Context) ([]Comparison, error) {
	return l.store.Comparisons(ctx)
}

// LatestComparison returns the head of the most-recent-first list.
func (l *Ledger) LatestComparison(ctx context.Context) (Comparison, error) {
	comparisons, err := l.store.Comparisons(ctx)
	if err != nil {
		return Comparison{}, err
	}
	if len(comparisons) == 0 {
		return Comparison{}, ErrComparisonNotFound
	}
	return comparisons[0], nil
}

func (l *Ledger) DeleteComparison(ctx context.Context, id string) error {
	return l.store.DeleteComparison(ctx, id)
}

// =============================================================================
// TREND
// =============================================================================

// Trend aggregates a metric over the most recent records into a labeled
// monthly series. Returns ErrInsufficientHistory with fewer than two
// source records.
func (l *Ledger) Trend(ctx context.Context, metric Metric, monthsWindow int) (*TrendSeries, error) {
	records, err := l.Records(ctx)
	if err != nil {
		return nil, err
	}
	series := AnalyzeTrend(records, metric, monthsWindow)
	if series == nil {
		return nil, ErrInsufficientHistory
	}
	return series, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (l *Ledger) assignLineIDs(r *Record) {
	for i := range r.Entitlements {
		if r.Entitlements[i].ID == "" {
			r.Entitlements[i].ID = l.newID()
		}
	}
	for i := range r.Deductions {
		if r.Deductions[i].ID == "" {
			r.Deductions[i].ID = l.newID()
		}
	}
	for i := range r.Allotments {
		if r.Allotments[i].ID == "" {
			r.Allotments[i].ID = l.newID()
		}
	}
}
