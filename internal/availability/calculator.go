package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var (
	// ErrInvalidInput возвращается при неположительной длительности или шаге сетки
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrInvalidWorkingHours возвращается, если рабочие часы включенного дня некорректны
	ErrInvalidWorkingHours = fmt.Errorf("%w: malformed working hours", ErrInvalidInput)
)

// Calculator вычисляет свободные слоты с фиксированным шагом сетки
type Calculator struct {
	granularityMinutes int
}

// NewCalculator создает калькулятор с шагом сетки granularityMinutes
func NewCalculator(granularityMinutes int) *Calculator {
	return &Calculator{granularityMinutes: granularityMinutes}
}

// GranularityMinutes шаг сетки слотов
func (c *Calculator) GranularityMinutes() int {
	return c.granularityMinutes
}

// AvailableSlots см. ComputeAvailableSlots
func (c *Calculator) AvailableSlots(
	staff *domain.Staff,
	date time.Time,
	durationMinutes int,
	bookings []*domain.Booking,
	breaks []*domain.Break,
) ([]types.TimeString, error) {
	return ComputeAvailableSlots(staff, date, durationMinutes, bookings, breaks, c.granularityMinutes)
}

// ComputeAvailableSlots возвращает времена начала, в которые мастер может принять
// услугу длительностью durationMinutes в указанную дату.
//
// Кандидаты идут с шагом granularityMinutes от начала рабочего дня, пока start + duration <= конец дня.
// Кандидат отбрасывается, если [start, start+duration) пересекается с перерывом или активным
// бронированием мастера на эту дату. Бронирования других мастеров и дат, а также
// неактивные бронирования игнорируются.
//
// Пустой результат не является ошибкой.
func ComputeAvailableSlots(
	staff *domain.Staff,
	date time.Time,
	durationMinutes int,
	bookings []*domain.Booking,
	breaks []*domain.Break,
	granularityMinutes int,
) ([]types.TimeString, error) {
	if staff == nil {
		return nil, fmt.Errorf("%w: staff is required", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive, got %d", ErrInvalidInput, granularityMinutes)
	}

	day := staff.WorkingHours.For(date)
	if !day.Enabled {
		return []types.TimeString{}, nil
	}
	if day.Start.IsZero() || day.End.IsZero() || !day.Start.IsBefore(day.End) {
		return nil, fmt.Errorf("%w: %s %q-%q", ErrInvalidWorkingHours,
			domain.WeekdayName(date.Weekday()), day.Start.String(), day.End.String())
	}

	occupied := OccupiedIntervalsFor(date, filterStaffBreaks(staff.ID, breaks))
	occupied = append(occupied, BookingIntervals(staff.ID, date, bookings, "")...)

	slots := make([]types.TimeString, 0)
	dayEnd := day.End.Minutes()
	for start := day.Start.Minutes(); start+durationMinutes <= dayEnd; start += granularityMinutes {
		candidate := domain.Interval{Start: start, End: start + durationMinutes}
		if overlapsAny(candidate, occupied) {
			continue
		}
		slot, err := types.NewTimeString(start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// OccupiedIntervalsFor разворачивает перерывы в занятые интервалы указанной даты.
// Разовые перерывы действуют на каждую дату диапазона, повторяющиеся только в выбранные дни недели.
// Результат отсортирован по началу интервала.
func OccupiedIntervalsFor(date time.Time, breaks []*domain.Break) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(breaks))
	for _, b := range breaks {
		if b == nil || !b.AppliesOn(date) {
			continue
		}
		interval := b.Interval()
		if interval.IsEmpty() {
			continue
		}
		intervals = append(intervals, interval)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
	return intervals
}

// BookingIntervals возвращает интервалы активных бронирований мастера на дату.
// Бронирование excludeID пропускается (используется при переносе).
func BookingIntervals(staffID string, date time.Time, bookings []*domain.Booking, excludeID string) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if staffID != "" && b.StaffID != "" && b.StaffID != staffID {
			continue
		}
		if !b.BookingDate.IsZero() && !types.SameDate(b.BookingDate, date) {
			continue
		}
		intervals = append(intervals, b.Interval())
	}
	return intervals
}

// Conflicts сообщает, пересекается ли интервал с активными бронированиями из списка
func Conflicts(candidate domain.Interval, staffID string, date time.Time, bookings []*domain.Booking, excludeID string) bool {
	return overlapsAny(candidate, BookingIntervals(staffID, date, bookings, excludeID))
}

// IsAvailable сообщает, есть ли время t среди свободных слотов
func IsAvailable(slots []types.TimeString, t types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

func filterStaffBreaks(staffID string, breaks []*domain.Break) []*domain.Break {
	if staffID == "" {
		return breaks
	}
	filtered := make([]*domain.Break, 0, len(breaks))
	for _, b := range breaks {
		if b != nil && (b.StaffID == "" || b.StaffID == staffID) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func overlapsAny(candidate domain.Interval, occupied []domain.Interval) bool {
	for _, occ := range occupied {
		if candidate.Overlaps(occ) {
			return true
		}
	}
	return false
}
