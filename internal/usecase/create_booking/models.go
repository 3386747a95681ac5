package create_booking

import (
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	StaffID        string           `validate:"required,max=64"`
	CustomerID     string           `validate:"max=64"` // ID клиента во внешней системе (опционально)
	CustomerName   string           `validate:"required,max=200"`
	CustomerEmail  string           `validate:"required,email,max=254"`
	CustomerPhone  string           `validate:"required,min=5,max=32"`
	ServiceIDs     []string         `validate:"required,min=1,max=10,dive,required"` // Порядок выполнения услуг
	Date           time.Time        `validate:"required"`                            // Дата бронирования (без времени)
	StartTime      types.TimeString `validate:"required"`                            // Время начала (например, "10:00")
	PaymentMethod  string           `validate:"omitempty,oneof=cash paypal invoice"`
	IsHomeService  bool             // Выезд мастера к клиенту
	ServiceAddress *string          `validate:"required_if=IsHomeService true"`
	Notes          *string          // Дополнительные заметки (опционально)
}
