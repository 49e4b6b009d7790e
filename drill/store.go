package drill

import (
	"context"
	"errors"

	"github.com/scott198989/milpay-engine/rates"
)

// ErrScheduleNotFound is returned when a schedule lookup misses.
var ErrScheduleNotFound = errors.New("drill schedule not found")

// Store persists drill schedules. One schedule per fiscal year per
// branch; SaveSchedule is an upsert by id.
type Store interface {
	SaveSchedule(ctx context.Context, s Schedule) error
	Schedule(ctx context.Context, id string) (Schedule, error)
	ScheduleForYear(ctx context.Context, fiscalYear int, branch rates.Branch) (Schedule, error)
	Schedules(ctx context.Context) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}
