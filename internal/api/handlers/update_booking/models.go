package update_booking

import (
	updateBooking "github.com/m04kA/barbershop-booking/internal/usecase/update_booking"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// UpdateBookingRequest HTTP request model. Все поля опциональны.
type UpdateBookingRequest struct {
	BookingDate   *string `json:"bookingDate,omitempty"` // "2025-10-15"
	StartTime     *string `json:"startTime,omitempty"`   // "10:00"
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
	AdminNotes    *string `json:"adminNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID string) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		BookingID:     bookingID,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		AdminNotes:    r.AdminNotes,
	}

	if r.BookingDate != nil {
		d, err := types.ParseDate(*r.BookingDate)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = &d
	}

	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, errInvalidTime
		}
		req.StartTime = &ts
	}

	return req, nil
}
