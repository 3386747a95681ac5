package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a status transition is not allowed
var ErrInvalidState = errors.New("domain: invalid booking state transition")

// ErrUnknownStatus is returned when parsing an unknown status value
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// transitions допустимые переходы статусов бронирования
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed:   {StatusRescheduled, StatusCancelled, StatusCompleted},
	StatusRescheduled: {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusCancelled:   nil,
	StatusCompleted:   nil,
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsActive returns true for statuses that block the booked interval
func (s BookingStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses without outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseBookingStatus конвертирует строку в статус
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// NewInvalidTransitionError wraps ErrInvalidState with both statuses
func NewInvalidTransitionError(from, to BookingStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidState, from, to)
}
