package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

var (
	// ErrDateInPast возвращается для даты раньше сегодняшней
	ErrDateInPast = errors.New("availability: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("availability: date is too far in the future")

	// ErrTooLateToBook возвращается, когда слот нарушает минимальное время до записи
	ErrTooLateToBook = errors.New("availability: too late to book this slot")
)

// CheckBookingWindow проверяет, что календарная дата не в прошлом и укладывается в
// advanceBookingDays от сегодняшнего дня. now должен быть в часовом поясе салона.
// advanceBookingDays = 0 означает отсутствие ограничения.
func CheckBookingWindow(date, now time.Time, advanceBookingDays int) error {
	day := types.NormalizeDate(date)
	today := types.NormalizeDate(now)

	if day.Before(today) {
		return ErrDateInPast
	}
	if advanceBookingDays > 0 && day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}
	return nil
}

// EarliestStart возвращает минимальное время начала на дату с учетом минимального времени до записи.
// ok=false означает, что ограничения на эту дату нет (дата не сегодня).
// Если ограничение уходит за конец суток, возвращается 24:00.
func EarliestStart(date, now time.Time, minNoticeMinutes int) (types.TimeString, bool) {
	if !types.SameDate(date, now) {
		return types.TimeString{}, false
	}

	minutes := now.Hour()*60 + now.Minute() + minNoticeMinutes
	if now.Second() > 0 || now.Nanosecond() > 0 {
		minutes++
	}
	if minutes > 24*60 {
		minutes = 24 * 60
	}
	earliest, _ := types.NewTimeString(minutes)
	return earliest, true
}

// ApplyMinNotice отбрасывает слоты, начинающиеся раньше, чем через minNoticeMinutes от now
func ApplyMinNotice(slots []types.TimeString, date, now time.Time, minNoticeMinutes int) []types.TimeString {
	earliest, ok := EarliestStart(date, now, minNoticeMinutes)
	if !ok {
		return slots
	}

	filtered := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if !s.IsBefore(earliest) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// CheckMinNotice проверяет конкретное время начала
func CheckMinNotice(date time.Time, start types.TimeString, now time.Time, minNoticeMinutes int) error {
	earliest, ok := EarliestStart(date, now, minNoticeMinutes)
	if ok && start.IsBefore(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}
	return nil
}
