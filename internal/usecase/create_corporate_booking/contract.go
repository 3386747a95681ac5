package create_corporate_booking

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
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
	ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID string) ([]*domain.Booking, error)
}

// BreakRepository интерфейс репозитория перерывов
type BreakRepository interface {
	ListForDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Break, error)
}

// CorporateRepository интерфейс репозитория данных компаний
type CorporateRepository interface {
	Create(ctx context.Context, d *domain.CorporateDetails) (*domain.CorporateDetails, error)
}

// SettingsProvider источник настроек бронирования
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.BookingSettings, error)
}

// Ledger реестр бронирований
type Ledger interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
