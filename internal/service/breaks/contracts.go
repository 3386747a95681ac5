package breaks

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// BreakRepository интерфейс репозитория перерывов
type BreakRepository interface {
	Create(ctx context.Context, b *domain.Break) (*domain.Break, error)
	GetByID(ctx context.Context, id string) (*domain.Break, error)
	ListByStaff(ctx context.Context, staffID string, from, to *time.Time) ([]*domain.Break, error)
	ListForDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Break, error)
	Update(ctx context.Context, b *domain.Break) (*domain.Break, error)
	Delete(ctx context.Context, id string) error
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
}

// SlotInvalidator сбрасывает закэшированные слоты мастера
type SlotInvalidator interface {
	InvalidateStaff(ctx context.Context, staffID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
