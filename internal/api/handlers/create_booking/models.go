package create_booking

import (
	createBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_booking"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StaffID        string   `json:"staffId"`
	CustomerID     string   `json:"customerId,omitempty"`
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail"`
	CustomerPhone  string   `json:"customerPhone"`
	ServiceIDs     []string `json:"serviceIds"`
	BookingDate    string   `json:"bookingDate"` // "2025-10-15"
	StartTime      string   `json:"startTime"`   // "10:00"
	PaymentMethod  string   `json:"paymentMethod,omitempty"`
	IsHomeService  bool     `json:"isHomeService"`
	ServiceAddress *string  `json:"serviceAddress,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		StaffID:        r.StaffID,
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		ServiceIDs:     r.ServiceIDs,
		Date:           bookingDate,
		StartTime:      startTime,
		PaymentMethod:  r.PaymentMethod,
		IsHomeService:  r.IsHomeService,
		ServiceAddress: r.ServiceAddress,
		Notes:          r.Notes,
	}, nil
}
