package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/validation"
)

const maxAddressLength = 300

// validateRequest валидирует входные данные запроса
func validateRequest(v *validation.Validator, req *Request) error {
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if req.IsHomeService && strings.TrimSpace(ptr.Value(req.ServiceAddress)) == "" {
		return fmt.Errorf("%w: serviceAddress is required for home service", ErrInvalidInput)
	}
	if len(ptr.Value(req.ServiceAddress)) > maxAddressLength {
		return fmt.Errorf("%w: serviceAddress must be at most %d characters", ErrInvalidInput, maxAddressLength)
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
