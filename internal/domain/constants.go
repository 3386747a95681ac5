package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultHomeServiceFee          = "150.00"
)

// Business validation constants
const (
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServicesPerBooking       = 10
	MaxCorporateEmployees       = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает время мастера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
}

// InactiveStatuses статусы, освобождающие время мастера
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
