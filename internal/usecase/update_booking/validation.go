package update_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/bookings"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if req.isEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}
	if req.StartTime != nil && req.StartTime.IsZero() {
		return fmt.Errorf("%w: time must not be empty", ErrInvalidInput)
	}
	if req.Status != nil {
		if _, err := domain.ParseBookingStatus(*req.Status); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.PaymentStatus != nil && !domain.PaymentStatus(*req.PaymentStatus).IsValid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *req.PaymentStatus)
	}
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// mapWindowError переводит ошибки окна бронирования в ошибки usecase
func mapWindowError(err error) error {
	switch {
	case errors.Is(err, availability.ErrDateInPast):
		return ErrInvalidDate
	case errors.Is(err, availability.ErrDateTooFarInFuture):
		return fmt.Errorf("%w: %v", ErrDateTooFarInFuture, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// isUseCaseError сообщает, что ошибка уже переведена в ошибку usecase
func isUseCaseError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrInvalidDate, ErrDateTooFarInFuture, ErrSlotNoLongerAvailable,
		ErrInvalidState, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// mapLedgerError переводит ошибки реестра в ошибки usecase
func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookings.ErrSlotConflict), txmanager.IsSerializationFailure(err):
		return ErrSlotNoLongerAvailable
	case errors.Is(err, bookings.ErrInvalidState):
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	case errors.Is(err, bookings.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
