package get_booking

import (
	"context"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

type BookingService interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type CorporateRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.CorporateDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
