package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	catalogRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/catalog"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// resolveDuration вычисляет длительность: сумма услуг, затем явная длительность, затем шаг сетки
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if len(req.ServiceIDs) == 0 {
		if req.DurationMinutes != nil {
			return *req.DurationMinutes, nil
		}
		return uc.calculator.GranularityMinutes(), nil
	}

	services, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return 0, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	if total <= 0 || total > maxDurationMinutes {
		return 0, fmt.Errorf("%w: total duration %d minutes is out of range", ErrInvalidInput, total)
	}
	return total, nil
}

// slotsFor возвращает слоты мастера на дату из кэша или вычисляет и кэширует их.
// Поколение кэша читается до обращения к базе, поэтому слоты, посчитанные по данным
// до параллельной записи, сохраняются под устаревшим поколением и не выдаются.
func (uc *UseCase) slotsFor(ctx context.Context, staff *domain.Staff, date time.Time, duration int) ([]types.TimeString, error) {
	var (
		generation int64
		cacheable  bool
	)
	if uc.cache != nil {
		gen, err := uc.cache.Generation(ctx, staff.ID)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache generation read failed for staff=%s: %v", staff.ID, err)
		} else {
			generation, cacheable = gen, true
		}
	}

	if cacheable {
		cached, found, err := uc.cache.Get(ctx, staff.ID, generation, date, duration)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache read failed for staff=%s: %v", staff.ID, err)
		} else {
			if uc.recorder != nil {
				uc.recorder.IncSlotCache(found)
			}
			if found {
				return cached, nil
			}
		}
	}

	bookings, err := uc.bookingRepo.ListActiveByStaffAndDate(ctx, staff.ID, date, "")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	breaks, err := uc.breakRepo.ListForDate(ctx, staff.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	slots, err := uc.calculator.AvailableSlots(staff, date, duration, bookings, breaks)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	if cacheable {
		if err := uc.cache.Set(ctx, staff.ID, generation, date, duration, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed for staff=%s: %v", staff.ID, err)
		}
	}

	return slots, nil
}
