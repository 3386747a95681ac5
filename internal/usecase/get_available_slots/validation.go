package get_available_slots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
)

const maxDurationMinutes = 24 * 60

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.StaffID) == "" {
		return fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	if req.DurationMinutes != nil && (*req.DurationMinutes <= 0 || *req.DurationMinutes > maxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, maxDurationMinutes)
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
