package list_breaks

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

type BreakService interface {
	List(ctx context.Context, staffID string, from, to *time.Time) ([]*domain.Break, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
