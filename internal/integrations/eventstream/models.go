package eventstream

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
)

// BookingMessage тело сообщения о бронировании в Kafka
type BookingMessage struct {
	EventID      string    `json:"eventId"`
	EventType    string    `json:"eventType"`
	OccurredAt   time.Time `json:"occurredAt"`
	BookingID    string    `json:"bookingId"`
	StaffID      string    `json:"staffId"`
	CustomerID   string    `json:"customerId,omitempty"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"durationMinutes"`
	ServiceIDs   []string  `json:"serviceIds"`
	TotalPrice   string    `json:"totalPrice"`
	PreviousDate *string   `json:"previousDate,omitempty"`
	PreviousTime *string   `json:"previousTime,omitempty"`
}

// NewBookingMessage собирает сообщение из события шины
func NewBookingMessage(event events.BookingEvent) BookingMessage {
	b := event.Booking
	msg := BookingMessage{
		EventID:    event.ID,
		EventType:  string(event.Type),
		OccurredAt: event.OccurredAt,
		BookingID:  b.ID,
		StaffID:    b.StaffID,
		CustomerID: b.CustomerID,
		Kind:       string(b.Kind),
		Status:     string(b.Status),
		Date:       types.FormatDate(b.BookingDate),
		Time:       b.BookingTime.String(),
		Duration:   b.DurationMinutes,
		ServiceIDs: b.ServiceIDs,
		TotalPrice: b.TotalPrice.StringFixed(2),
	}
	if event.PreviousDate != nil {
		d := types.FormatDate(*event.PreviousDate)
		msg.PreviousDate = &d
	}
	if event.PreviousTime != nil {
		t := event.PreviousTime.String()
		msg.PreviousTime = &t
	}
	return msg
}
