package create_corporate_booking

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// EmployeeRequest услуги для одного сотрудника компании
type EmployeeRequest struct {
	EmployeeName string   `validate:"required,max=200"`
	ServiceIDs   []string `validate:"required,min=1,max=10,dive,required"`
	Notes        *string
}

// Request модель запроса на корпоративное бронирование.
// Сотрудники обслуживаются одним мастером последовательно, в порядке списка.
type Request struct {
	StaffID             string            `validate:"required,max=64"`
	CompanyName         string            `validate:"required,max=200"`
	ContactPerson       string            `validate:"required,max=200"`
	CompanyEmail        string            `validate:"required,email,max=254"`
	CompanyPhone        string            `validate:"required,min=5,max=32"`
	CompanyAddress      string            `validate:"required,max=300"`
	CompanyCity         string            `validate:"required,max=100"`
	CompanyPostalCode   string            `validate:"required,max=20"`
	Employees           []EmployeeRequest `validate:"required,min=1,max=50,dive"`
	Date                time.Time         `validate:"required"`
	StartTime           types.TimeString  `validate:"required"`
	PaymentMethod       string            `validate:"omitempty,oneof=cash paypal invoice"`
	SpecialRequirements *string
	Notes               *string
}

// Response созданное бронирование и данные компании
type Response struct {
	Booking *domain.Booking
	Details *domain.CorporateDetails
}
