/*
Package drill models the drill-year schedule: weekends, their MUTA
periods, and the per-fiscal-year counters derived from them.

PURPOSE:
  A drill weekend is MUTA-counted training: each weekend owns 1-8
  periods, generated deterministically at creation (periods 1-2 on the
  start date, periods 3+ on the following day: the Saturday/Sunday
  split). Period status moves only through explicit transitions, and the
  schedule's counters are maintained incrementally on every transition.

CRITICAL INVARIANT:
  Schedule.TotalScheduledMUTAs always equals the sum of MUTACount over
  its weekends. AddWeekend/RemoveWeekend maintain it; nothing else
  touches it.

LIFECYCLE:
  Schedules and weekends are created and deleted only by explicit user
  action, as a unit. There is no garbage collection.

SEE ALSO:
  - fiscal.go: Oct 1 - Sep 30 fiscal-year arithmetic
  - store.go: persistence boundary
*/
package drill

import (
	"time"

	"github.com/google/uuid"

	"github.com/scott198989/milpay-engine/rates"
)

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusExcused     Status = "excused"
	StatusUnexcused   Status = "unexcused"
	StatusRescheduled Status = "rescheduled"
	StatusCancelled   Status = "cancelled"
)

// =============================================================================
// PERIODS AND WEEKENDS
// =============================================================================

// Period is one paid/unpaid instance within a weekend. Never deleted
// except with its parent weekend.
type Period struct {
	Date         time.Time `json:"date"`
	PeriodNumber int       `json:"period_number"` // 1-4 per day
	Status       Status    `json:"status"`
}

type EventType string

const (
	EventDrillWeekend   EventType = "drill_weekend"
	EventAnnualTraining EventType = "annual_training"
	EventAdditionalDuty EventType = "additional_duty"
)

type Weekend struct {
	ID        string    `json:"id"`
	EventType EventType `json:"event_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	MUTACount int       `json:"muta_count"` // 1-8
	Periods   []Period  `json:"periods"`
	IsPaid    bool      `json:"is_paid"`
	ActualPay float64   `json:"actual_pay"`
}

// NewWeekend builds a weekend with its periods generated from the MUTA
// count: periods 1-2 land on the start date, periods 3+ on the next day.
// MUTA counts outside 1-8 are clamped.
func NewWeekend(eventType EventType, start, end time.Time, mutaCount int) Weekend {
	if mutaCount < 1 {
		mutaCount = 1
	}
	if mutaCount > 8 {
		mutaCount = 8
	}

	periods := make([]Period, mutaCount)
	for i := 0; i < mutaCount; i++ {
		date := start
		if i >= 2 {
			date = start.AddDate(0, 0, 1)
		}
		periods[i] = Period{
			Date:         date,
			PeriodNumber: i%4 + 1,
			Status:       StatusScheduled,
		}
	}

	return Weekend{
		ID:        uuid.NewString(),
		EventType: eventType,
		StartDate: start,
		EndDate:   end,
		MUTACount: mutaCount,
		Periods:   periods,
	}
}

// =============================================================================
// SCHEDULE - One per fiscal year per branch
// =============================================================================

type Schedule struct {
	ID         string        `json:"id"`
	FiscalYear int           `json:"fiscal_year"`
	Branch     rates.Branch  `json:"branch"`
	Weekends   []Weekend     `json:"weekends"`

	TotalScheduledMUTAs int `json:"total_scheduled_mutas"`
	TotalCompletedMUTAs int `json:"total_completed_mutas"`
	TotalExcused        int `json:"total_excused"`
	TotalUnexcused      int `json:"total_unexcused"`

	ATDays      int `json:"at_days"`
	ATCompleted int `json:"at_completed"`
}

func NewSchedule(fiscalYear int, branch rates.Branch) *Schedule {
	return &Schedule{
		ID:         uuid.NewString(),
		FiscalYear: fiscalYear,
		Branch:     branch,
	}
}

// AddWeekend appends the weekend and bumps the scheduled-MUTA counter.
func (s *Schedule) AddWeekend(w Weekend) {
	s.Weekends = append(s.Weekends, w)
	s.TotalScheduledMUTAs += w.MUTACount
}

// RemoveWeekend deletes the weekend and its periods as a unit, unwinding
// every counter the weekend contributed to.
func (s *Schedule) RemoveWeekend(weekendID string) bool {
	for i, w := range s.Weekends {
		if w.ID != weekendID {
			continue
		}
		s.TotalScheduledMUTAs -= w.MUTACount
		for _, p := range w.Periods {
			s.uncount(p.Status)
		}
		s.Weekends = append(s.Weekends[:i], s.Weekends[i+1:]...)
		return true
	}
	return false
}

// SetPeriodStatus is the only way a period's status changes. The
// schedule's completion counters follow the transition incrementally.
// Returns false when the weekend or period number does not exist.
func (s *Schedule) SetPeriodStatus(weekendID string, periodIndex int, status Status) bool {
	for wi := range s.Weekends {
		w := &s.Weekends[wi]
		if w.ID != weekendID {
			continue
		}
		if periodIndex < 0 || periodIndex >= len(w.Periods) {
			return false
		}
		prev := w.Periods[periodIndex].Status
		if prev == status {
			return true
		}
		s.uncount(prev)
		s.count(status)
		w.Periods[periodIndex].Status = status
		return true
	}
	return false
}

// MarkWeekendPaid records the pay actually received for a weekend.
func (s *Schedule) MarkWeekendPaid(weekendID string, actualPay float64) bool {
	for wi := range s.Weekends {
		if s.Weekends[wi].ID == weekendID {
			s.Weekends[wi].IsPaid = true
			s.Weekends[wi].ActualPay = actualPay
			return true
		}
	}
	return false
}

// SetATDays sets the annual-training obligation and completion for the
// fiscal year.
func (s *Schedule) SetATDays(scheduled, completed int) {
	if scheduled < 0 {
		scheduled = 0
	}
	if completed < 0 {
		completed = 0
	}
	s.ATDays = scheduled
	s.ATCompleted = completed
}

// CompletionRate returns completed MUTAs over scheduled MUTAs in percent,
// zero when nothing is scheduled.
func (s *Schedule) CompletionRate() float64 {
	if s.TotalScheduledMUTAs == 0 {
		return 0
	}
	return float64(s.TotalCompletedMUTAs) / float64(s.TotalScheduledMUTAs) * 100
}

func (s *Schedule) count(status Status) {
	switch status {
	case StatusCompleted:
		s.TotalCompletedMUTAs++
	case StatusExcused:
		s.TotalExcused++
	case StatusUnexcused:
		s.TotalUnexcused++
	}
}

func (s *Schedule) uncount(status Status) {
	switch status {
	case StatusCompleted:
		s.TotalCompletedMUTAs--
	case StatusExcused:
		s.TotalExcused--
	case StatusUnexcused:
		s.TotalUnexcused--
	}
}
