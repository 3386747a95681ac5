package create_corporate_booking

import (
	"github.com/m04kA/barbershop-booking/internal/api/handlers/get_booking"
	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
	createCorporateBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_corporate_booking"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// EmployeeRequest услуги одного сотрудника
type EmployeeRequest struct {
	EmployeeName string   `json:"employeeName"`
	ServiceIDs   []string `json:"serviceIds"`
	Notes        *string  `json:"notes,omitempty"`
}

// CreateCorporateBookingRequest HTTP request model
type CreateCorporateBookingRequest struct {
	StaffID             string            `json:"staffId"`
	CompanyName         string            `json:"companyName"`
	ContactPerson       string            `json:"contactPerson"`
	CompanyEmail        string            `json:"companyEmail"`
	CompanyPhone        string            `json:"companyPhone"`
	CompanyAddress      string            `json:"companyAddress"`
	CompanyCity         string            `json:"companyCity"`
	CompanyPostalCode   string            `json:"companyPostalCode"`
	Employees           []EmployeeRequest `json:"employees"`
	BookingDate         string            `json:"bookingDate"` // "2025-10-15"
	StartTime           string            `json:"startTime"`   // "10:00"
	PaymentMethod       string            `json:"paymentMethod,omitempty"`
	SpecialRequirements *string           `json:"specialRequirements,omitempty"`
	Notes               *string           `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCorporateBookingRequest) ToUseCaseRequest() (*createCorporateBooking.Request, error) {
	bookingDate, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	employees := make([]createCorporateBooking.EmployeeRequest, 0, len(r.Employees))
	for _, e := range r.Employees {
		employees = append(employees, createCorporateBooking.EmployeeRequest{
			EmployeeName: e.EmployeeName,
			ServiceIDs:   e.ServiceIDs,
			Notes:        e.Notes,
		})
	}

	return &createCorporateBooking.Request{
		StaffID:             r.StaffID,
		CompanyName:         r.CompanyName,
		ContactPerson:       r.ContactPerson,
		CompanyEmail:        r.CompanyEmail,
		CompanyPhone:        r.CompanyPhone,
		CompanyAddress:      r.CompanyAddress,
		CompanyCity:         r.CompanyCity,
		CompanyPostalCode:   r.CompanyPostalCode,
		Employees:           employees,
		Date:                bookingDate,
		StartTime:           startTime,
		PaymentMethod:       r.PaymentMethod,
		SpecialRequirements: r.SpecialRequirements,
		Notes:               r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCorporateBooking.Response) *get_booking.BookingResponse {
	return &get_booking.BookingResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking),
		Corporate:       get_booking.FromDomainCorporate(resp.Details),
	}
}
