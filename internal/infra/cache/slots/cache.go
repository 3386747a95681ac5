package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// DefaultTTL время жизни закэшированных слотов мастера
const DefaultTTL = 5 * time.Minute

// Cache кэш вычисленных свободных слотов.
// Значения хранятся по мастеру, дате и длительности; минимальное время до записи
// применяется после чтения из кэша, поэтому результат не зависит от текущего времени.
//
// У каждого мастера есть поколение. InvalidateStaff увеличивает его, а Get и Set
// работают только с переданным поколением: слоты, вычисленные по данным, прочитанным
// до инвалидации, уже не попадут в выдачу.
type Cache interface {
	Generation(ctx context.Context, staffID string) (int64, error)
	Get(ctx context.Context, staffID string, generation int64, date time.Time, durationMinutes int) ([]types.TimeString, bool, error)
	Set(ctx context.Context, staffID string, generation int64, date time.Time, durationMinutes int, slots []types.TimeString) error
	InvalidateStaff(ctx context.Context, staffID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// InvalidationHandler сбрасывает слоты мастера при любом событии бронирования
func InvalidationHandler(cache Cache, logger Logger) events.Handler {
	return func(ctx context.Context, event events.BookingEvent) error {
		staffID := event.Booking.StaffID
		if staffID == "" {
			return nil
		}
		if err := cache.InvalidateStaff(ctx, staffID); err != nil {
			logger.Warn("InvalidationHandler: failed to invalidate staff=%s after %s: %v", staffID, event.Type, err)
			return err
		}
		return nil
	}
}

func generationKey(staffID string) string {
	return "slots:" + staffID + ":gen"
}

func entryKey(staffID string, generation int64, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("slots:%s:%d:%s", staffID, generation, slotField(date, durationMinutes))
}

func slotField(date time.Time, durationMinutes int) string {
	return fmt.Sprintf("%s:%d", types.FormatDate(date), durationMinutes)
}
