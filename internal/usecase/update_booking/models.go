package update_booking

import (
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Request модель запроса на изменение бронирования.
// Все поля, кроме BookingID, опциональны.
type Request struct {
	BookingID     string
	Date          *time.Time
	StartTime     *types.TimeString
	Status        *string
	PaymentStatus *string
	AdminNotes    *string
}

func (r *Request) isEmpty() bool {
	return r.Date == nil && r.StartTime == nil && r.Status == nil && r.PaymentStatus == nil && r.AdminNotes == nil
}
