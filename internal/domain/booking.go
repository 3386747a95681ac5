package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusCompleted   BookingStatus = "completed"
	StatusRescheduled BookingStatus = "rescheduled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// IsValid reports whether ps is a known payment status
func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// PaymentMethod how the customer pays
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentPayPal  PaymentMethod = "paypal"
	PaymentInvoice PaymentMethod = "invoice"
)

// BookingKind distinguishes individual and corporate reservations
type BookingKind string

const (
	KindIndividual BookingKind = "individual"
	KindCorporate  BookingKind = "corporate"
)

// Booking represents a reserved time block of one staff member
type Booking struct {
	ID         string
	StaffID    string
	CustomerID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServiceIDs      []string // порядок важен: услуги выполняются последовательно
	BookingDate     time.Time
	BookingTime     types.TimeString
	DurationMinutes int
	TotalPrice      decimal.Decimal

	Kind          BookingKind
	Status        BookingStatus
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	IsHomeService  bool
	ServiceAddress *string
	TravelFee      decimal.Decimal

	Notes      *string
	AdminNotes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time block
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// Interval returns the occupied half-open interval of the booking
func (b *Booking) Interval() Interval {
	start := b.BookingTime.Minutes()
	return Interval{Start: start, End: start + b.DurationMinutes}
}

// EndTime returns bookingTime + duration
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.BookingTime.AddMinutes(b.DurationMinutes)
}

// StartsAt returns the start instant in the given location
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	y, m, d := b.BookingDate.Date()
	return b.BookingTime.On(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// TransitionTo moves the booking into status or returns ErrInvalidState
func (b *Booking) TransitionTo(status BookingStatus) error {
	if !CanTransition(b.Status, status) {
		return NewInvalidTransitionError(b.Status, status)
	}
	b.Status = status
	return nil
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	StaffID         *string         // Фильтр по мастеру (опционально)
	CustomerID      *string         // Фильтр по клиенту (опционально)
	StartDate       *time.Time      // Начало периода включительно (опционально)
	EndDate         *time.Time      // Конец периода включительно (опционально)
	Statuses        []BookingStatus // Фильтр по статусам (опционально)
	IncludeInactive bool            // Включать ли отмененные и завершенные
}
