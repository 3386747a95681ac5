package get_booking

import (
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
)

// CorporateResponse данные компании корпоративного бронирования
type CorporateResponse struct {
	CompanyName         string                    `json:"companyName"`
	ContactPerson       string                    `json:"contactPerson"`
	CompanyEmail        string                    `json:"companyEmail"`
	CompanyPhone        string                    `json:"companyPhone"`
	CompanyAddress      string                    `json:"companyAddress"`
	CompanyCity         string                    `json:"companyCity"`
	CompanyPostalCode   string                    `json:"companyPostalCode"`
	Employees           []domain.EmployeeServices `json:"employees"`
	ServicesPrice       string                    `json:"servicesPrice"`
	CompanyTravelFee    string                    `json:"companyTravelFee"`
	SpecialRequirements *string                   `json:"specialRequirements,omitempty"`
}

// BookingResponse бронирование с данными компании для корпоративных записей
type BookingResponse struct {
	*models.BookingResponse
	Corporate *CorporateResponse `json:"corporate,omitempty"`
}

// FromDomainCorporate конвертирует данные компании в DTO
func FromDomainCorporate(d *domain.CorporateDetails) *CorporateResponse {
	if d == nil {
		return nil
	}
	return &CorporateResponse{
		CompanyName:         d.CompanyName,
		ContactPerson:       d.ContactPerson,
		CompanyEmail:        d.CompanyEmail,
		CompanyPhone:        d.CompanyPhone,
		CompanyAddress:      d.CompanyAddress,
		CompanyCity:         d.CompanyCity,
		CompanyPostalCode:   d.CompanyPostalCode,
		Employees:           d.Employees,
		ServicesPrice:       d.ServicesPrice.StringFixed(2),
		CompanyTravelFee:    d.CompanyTravelFee.StringFixed(2),
		SpecialRequirements: d.SpecialRequirements,
	}
}
