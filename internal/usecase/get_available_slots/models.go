package get_available_slots

import (
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StaffID         string    // ID мастера
	Date            time.Time // Дата для получения слотов (без времени)
	ServiceIDs      []string  // Услуги; длительность слота - сумма их длительностей
	DurationMinutes *int      // Явная длительность, если услуги не переданы
}

// Response модель ответа со списком доступных слотов
type Response struct {
	StaffID         string             // ID мастера
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность, для которой считались слоты
	Slots           []types.TimeString // Времена начала, отсортированы по возрастанию
}
