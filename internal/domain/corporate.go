package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeServices services requested for one employee of a corporate booking
type EmployeeServices struct {
	EmployeeName string   `json:"employeeName"`
	ServiceIDs   []string `json:"serviceIds"`
	Notes        *string  `json:"notes,omitempty"`
}

// CorporateDetails company data attached to a corporate booking.
// The time block itself lives in the Booking with Kind == KindCorporate.
type CorporateDetails struct {
	BookingID           string
	CompanyName         string
	ContactPerson       string
	CompanyEmail        string
	CompanyPhone        string
	CompanyAddress      string
	CompanyCity         string
	CompanyPostalCode   string
	Employees           []EmployeeServices
	ServicesPrice       decimal.Decimal
	CompanyTravelFee    decimal.Decimal
	SpecialRequirements *string
	CreatedAt           time.Time
}
