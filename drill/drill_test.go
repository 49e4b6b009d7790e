package drill_test

import (
	"testing"
	"time"

	"github.com/scott198989/milpay-engine/drill"
	"github.com/scott198989/milpay-engine/rates"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// PERIOD GENERATION
// =============================================================================

func TestNewWeekend_SaturdaySundaySplit(t *testing.T) {
	// GIVEN: a MUTA-4 weekend starting Saturday
	// THEN: periods 1-2 on Saturday, periods 3-4 on Sunday
	sat := day(2025, time.June, 7)
	w := drill.NewWeekend(drill.EventDrillWeekend, sat, sat.AddDate(0, 0, 1), 4)

	if len(w.Periods) != 4 {
		t.Fatalf("periods = %d, want 4", len(w.Periods))
	}
	for i, p := range w.Periods {
		wantDate := sat
		if i >= 2 {
			wantDate = sat.AddDate(0, 0, 1)
		}
		if !p.Date.Equal(wantDate) {
			t.Errorf("period %d date = %v, want %v", i+1, p.Date, wantDate)
		}
		if p.Status != drill.StatusScheduled {
			t.Errorf("period %d status = %s, want scheduled", i+1, p.Status)
		}
	}
}

func TestNewWeekend_ClampsMUTACount(t *testing.T) {
	if w := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.June, 7), day(2025, time.June, 7), 0); w.MUTACount != 1 {
		t.Errorf("MUTA 0 clamped to %d, want 1", w.MUTACount)
	}
	if w := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.June, 7), day(2025, time.June, 8), 12); w.MUTACount != 8 {
		t.Errorf("MUTA 12 clamped to %d, want 8", w.MUTACount)
	}
}

// =============================================================================
// SCHEDULE COUNTERS
// =============================================================================

func TestSchedule_ScheduledMUTAInvariant(t *testing.T) {
	// TotalScheduledMUTAs always equals the sum of MUTACount.
	s := drill.NewSchedule(2025, rates.BranchArmyGuard)

	a := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.January, 11), day(2025, time.January, 12), 4)
	b := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.February, 8), day(2025, time.February, 9), 2)
	s.AddWeekend(a)
	s.AddWeekend(b)
	if s.TotalScheduledMUTAs != 6 {
		t.Errorf("scheduled = %d, want 6", s.TotalScheduledMUTAs)
	}

	if !s.RemoveWeekend(b.ID) {
		t.Fatal("remove failed")
	}
	if s.TotalScheduledMUTAs != 4 {
		t.Errorf("after remove = %d, want 4", s.TotalScheduledMUTAs)
	}
	if s.RemoveWeekend("missing") {
		t.Error("removing an unknown weekend must report false")
	}
}

func TestSchedule_StatusTransitionsMoveCounters(t *testing.T) {
	s := drill.NewSchedule(2025, rates.BranchArmyGuard)
	w := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.March, 8), day(2025, time.March, 9), 4)
	s.AddWeekend(w)

	s.SetPeriodStatus(w.ID, 0, drill.StatusCompleted)
	s.SetPeriodStatus(w.ID, 1, drill.StatusCompleted)
	s.SetPeriodStatus(w.ID, 2, drill.StatusExcused)
	s.SetPeriodStatus(w.ID, 3, drill.StatusUnexcused)

	if s.TotalCompletedMUTAs != 2 || s.TotalExcused != 1 || s.TotalUnexcused != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1",
			s.TotalCompletedMUTAs, s.TotalExcused, s.TotalUnexcused)
	}

	// Re-classifying an excused period as completed moves, not double
	// counts.
	s.SetPeriodStatus(w.ID, 2, drill.StatusCompleted)
	if s.TotalCompletedMUTAs != 3 || s.TotalExcused != 0 {
		t.Errorf("after transition = %d completed / %d excused, want 3/0",
			s.TotalCompletedMUTAs, s.TotalExcused)
	}

	// Removing the weekend unwinds everything it contributed.
	s.RemoveWeekend(w.ID)
	if s.TotalScheduledMUTAs != 0 || s.TotalCompletedMUTAs != 0 || s.TotalUnexcused != 0 {
		t.Errorf("counters after removal = %+v, want all zero", s)
	}
}

func TestSchedule_SetPeriodStatusBounds(t *testing.T) {
	s := drill.NewSchedule(2025, rates.BranchArmyGuard)
	w := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.March, 8), day(2025, time.March, 9), 2)
	s.AddWeekend(w)

	if s.SetPeriodStatus(w.ID, 5, drill.StatusCompleted) {
		t.Error("out-of-range period index must report false")
	}
	if s.SetPeriodStatus("missing", 0, drill.StatusCompleted) {
		t.Error("unknown weekend must report false")
	}
}

func TestSchedule_CompletionRate(t *testing.T) {
	s := drill.NewSchedule(2025, rates.BranchArmyGuard)
	if s.CompletionRate() != 0 {
		t.Error("empty schedule completion must be 0")
	}
	w := drill.NewWeekend(drill.EventDrillWeekend, day(2025, time.March, 8), day(2025, time.March, 9), 4)
	s.AddWeekend(w)
	s.SetPeriodStatus(w.ID, 0, drill.StatusCompleted)
	s.SetPeriodStatus(w.ID, 1, drill.StatusCompleted)
	if got := s.CompletionRate(); got != 50 {
		t.Errorf("completion = %v, want 50", got)
	}
}

// =============================================================================
// FISCAL YEAR
// =============================================================================

func TestFiscalYear(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{day(2024, time.September, 30), 2024},
		{day(2024, time.October, 1), 2025},
		{day(2025, time.January, 15), 2025},
		{day(2025, time.September, 30), 2025},
		{day(2025, time.October, 1), 2026},
	}
	for _, c := range cases {
		if got := drill.FiscalYearOf(c.date); got != c.want {
			t.Errorf("FiscalYearOf(%v) = %d, want %d", c.date, got, c.want)
		}
	}

	start, end := drill.FiscalYearBounds(2025)
	if !start.Equal(day(2024, time.October, 1)) || !end.Equal(day(2025, time.September, 30)) {
		t.Errorf("FY2025 bounds = %v..%v", start, end)
	}
	if !drill.InFiscalYear(day(2025, time.March, 1), 2025) {
		t.Error("March 2025 is in FY2025")
	}
}
