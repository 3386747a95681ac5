package create_corporate_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/validation"
)

// validateRequest валидирует входные данные запроса
func validateRequest(v *validation.Validator, req *Request) error {
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if len(ptr.Value(req.SpecialRequirements)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: specialRequirements must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if len(ptr.Value(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
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
