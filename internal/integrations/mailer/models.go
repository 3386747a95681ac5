package mailer

import "time"

// Template тип уведомления, который почтовый шлюз превращает в письмо
type Template string

const (
	TemplateBookingCreated   Template = "booking_created"
	TemplateBookingConfirmed Template = "booking_confirmed"
	TemplateBookingChanged   Template = "booking_changed"
	TemplateBookingCancelled Template = "booking_cancelled"
	TemplateBookingReminder  Template = "booking_reminder"
)

// Notification модель запроса к почтовому шлюзу
type Notification struct {
	EventID      string    `json:"event_id"`
	Template     Template  `json:"template"`
	To           string    `json:"to"`
	CustomerName string    `json:"customer_name"`
	BookingID    string    `json:"booking_id"`
	StaffID      string    `json:"staff_id"`
	Date         string    `json:"date"` // "2025-10-15"
	Time         string    `json:"time"` // "14:30"
	EndTime      string    `json:"end_time,omitempty"`
	TotalPrice   string    `json:"total_price"`
	PreviousDate *string   `json:"previous_date,omitempty"`
	PreviousTime *string   `json:"previous_time,omitempty"`
	Reason       *string   `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ErrorResponse модель ошибки от почтового шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
