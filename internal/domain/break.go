package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// ErrInvalidBreak is returned when a break violates its invariants
var ErrInvalidBreak = errors.New("domain: invalid break")

// BreakType kind of staff unavailability
type BreakType string

const (
	BreakRegular  BreakType = "break"
	BreakLunch    BreakType = "lunch"
	BreakMeeting  BreakType = "meeting"
	BreakVacation BreakType = "vacation"
	BreakSick     BreakType = "sick"
	BreakOther    BreakType = "other"
)

// IsValid reports whether the break type is known
func (t BreakType) IsValid() bool {
	switch t {
	case BreakRegular, BreakLunch, BreakMeeting, BreakVacation, BreakSick, BreakOther:
		return true
	}
	return false
}

// Break a period during which a staff member is unavailable.
// The time range applies to every date in [StartDate, EndDate]; recurring breaks
// apply only on RecurringDays.
type Break struct {
	ID            string
	StaffID       string
	StartDate     time.Time
	EndDate       time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Type          BreakType
	Reason        *string
	IsRecurring   bool
	RecurringDays []time.Weekday
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the break invariants
func (b *Break) Validate() error {
	switch {
	case b.StaffID == "":
		return fmt.Errorf("%w: staff id is required", ErrInvalidBreak)
	case b.StartTime.IsZero() || b.EndTime.IsZero():
		return fmt.Errorf("%w: start and end time are required", ErrInvalidBreak)
	case !b.StartTime.IsBefore(b.EndTime):
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidBreak)
	case b.StartDate.IsZero() || b.EndDate.IsZero():
		return fmt.Errorf("%w: start and end date are required", ErrInvalidBreak)
	case types.NormalizeDate(b.EndDate).Before(types.NormalizeDate(b.StartDate)):
		return fmt.Errorf("%w: start date must not be after end date", ErrInvalidBreak)
	case !b.Type.IsValid():
		return fmt.Errorf("%w: unknown break type", ErrInvalidBreak)
	case b.IsRecurring && len(b.RecurringDays) == 0:
		return fmt.Errorf("%w: recurring break requires at least one weekday", ErrInvalidBreak)
	}
	return nil
}

// AppliesOn reports whether the break blocks time on the given date
func (b *Break) AppliesOn(date time.Time) bool {
	d := types.NormalizeDate(date)
	if d.Before(types.NormalizeDate(b.StartDate)) || d.After(types.NormalizeDate(b.EndDate)) {
		return false
	}
	if !b.IsRecurring {
		return true
	}
	for _, wd := range b.RecurringDays {
		if wd == d.Weekday() {
			return true
		}
	}
	return false
}

// Interval returns the blocked time range of one applicable day
func (b *Break) Interval() Interval {
	return Interval{Start: b.StartTime.Minutes(), End: b.EndTime.Minutes()}
}
