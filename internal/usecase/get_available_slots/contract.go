package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveByStaffAndDate получает активные бронирования мастера на дату
	ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID string) ([]*domain.Booking, error)
}

// BreakRepository интерфейс репозитория перерывов
type BreakRepository interface {
	ListForDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Break, error)
}

// SettingsProvider источник настроек бронирования
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.BookingSettings, error)
}

// SlotCache кэш вычисленных слотов
type SlotCache interface {
	Generation(ctx context.Context, staffID string) (int64, error)
	Get(ctx context.Context, staffID string, generation int64, date time.Time, durationMinutes int) ([]types.TimeString, bool, error)
	Set(ctx context.Context, staffID string, generation int64, date time.Time, durationMinutes int, slots []types.TimeString) error
}

// CacheMetrics метрики попаданий в кэш
type CacheMetrics interface {
	IncSlotCache(hit bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
