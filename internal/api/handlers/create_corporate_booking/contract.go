package create_corporate_booking

import (
	"context"

	createCorporateBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_corporate_booking"
)

type CreateCorporateBookingUseCase interface {
	Execute(ctx context.Context, req *createCorporateBooking.Request) (*createCorporateBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
