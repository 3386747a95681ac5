package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// ErrUnknownWeekday is returned for an unknown weekday name
var ErrUnknownWeekday = errors.New("domain: unknown weekday")

// DaySchedule working hours of one weekday
type DaySchedule struct {
	Start   types.TimeString
	End     types.TimeString
	Enabled bool
}

// WeeklySchedule working hours per weekday
type WeeklySchedule map[time.Weekday]DaySchedule

// For returns the schedule of the date's weekday; missing days are disabled
func (w WeeklySchedule) For(date time.Time) DaySchedule {
	day, ok := w[date.Weekday()]
	if !ok {
		return DaySchedule{}
	}
	return day
}

// DefaultWeeklySchedule Mon-Fri 09:00-18:00, Sat 10:00-16:00, Sun closed
func DefaultWeeklySchedule() WeeklySchedule {
	weekday := DaySchedule{Start: types.MustTimeString("09:00"), End: types.MustTimeString("18:00"), Enabled: true}
	return WeeklySchedule{
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  {Start: types.MustTimeString("10:00"), End: types.MustTimeString("16:00"), Enabled: true},
		time.Sunday:    {Start: types.MustTimeString("10:00"), End: types.MustTimeString("16:00"), Enabled: false},
	}
}

// Staff a barber whose time can be booked
type Staff struct {
	ID           string
	Name         string
	Email        *string
	Phone        *string
	WorkingHours WeeklySchedule
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Service a bookable service from the catalog
type Service struct {
	ID              string
	Name            string
	Category        string
	DurationMinutes int
	Price           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WeekdayName lowercase english weekday name used in storage and APIs
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ParseWeekday parses a weekday name ("monday", "Monday")
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if WeekdayName(d) == n {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

type dayScheduleJSON struct {
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Enabled bool   `json:"enabled"`
}

// MarshalWeeklySchedule serializes a schedule as {"monday": {"start": "09:00", ...}, ...}
func MarshalWeeklySchedule(w WeeklySchedule) (string, error) {
	out := make(map[string]dayScheduleJSON, len(w))
	for day, s := range w {
		out[WeekdayName(day)] = dayScheduleJSON{Start: s.Start.String(), End: s.End.String(), Enabled: s.Enabled}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalWeeklySchedule parses the format produced by MarshalWeeklySchedule
func UnmarshalWeeklySchedule(data string) (WeeklySchedule, error) {
	var raw map[string]dayScheduleJSON
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("domain: invalid working hours: %w", err)
	}

	w := make(WeeklySchedule, len(raw))
	for name, s := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		var schedule DaySchedule
		schedule.Enabled = s.Enabled
		if s.Start != "" {
			if schedule.Start, err = types.NewTimeStringFromString(s.Start); err != nil {
				return nil, fmt.Errorf("domain: invalid working hours for %s: %w", name, err)
			}
		}
		if s.End != "" {
			if schedule.End, err = types.NewTimeStringFromString(s.End); err != nil {
				return nil, fmt.Errorf("domain: invalid working hours for %s: %w", name, err)
			}
		}
		w[day] = schedule
	}
	return w, nil
}
