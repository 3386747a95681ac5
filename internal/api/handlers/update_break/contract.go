package update_break

import (
	"context"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/breaks/models"
)

type BreakService interface {
	Update(ctx context.Context, id string, req *models.UpdateBreakRequest) (*domain.Break, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
