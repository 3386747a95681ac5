package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/availability"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	staffRepo    StaffRepository
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	breakRepo    BreakRepository
	settings     SettingsProvider
	cache        SlotCache
	recorder     CacheMetrics
	calculator   *availability.Calculator
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil - тогда слоты всегда вычисляются заново.
func NewUseCase(
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	breakRepo BreakRepository,
	settings SettingsProvider,
	cache SlotCache,
	recorder CacheMetrics,
	calculator *availability.Calculator,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		staffRepo:    staffRepo,
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		breakRepo:    breakRepo,
		settings:     settings,
		cache:        cache,
		recorder:     recorder,
		calculator:   calculator,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%s, date=%s, services=%v",
		req.StaffID, types.FormatDate(req.Date), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := types.NormalizeDate(req.Date)
	now := uc.timeProvider.Now().In(uc.location)

	// 2. Настройки бронирования
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Проверяем окно бронирования
	if err := availability.CheckBookingWindow(date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, mapWindowError(err)
	}

	// 4. Получаем мастера
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("GetAvailableSlots: staff id=%s is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 5. Длительность услуги
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve duration: %v", err)
		return nil, err
	}

	// 6. Слоты с учетом рабочих часов, перерывов и бронирований
	slots, err := uc.slotsFor(ctx, staff, date, duration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 7. Минимальное время до записи действует только на сегодня
	slots = availability.ApplyMinNotice(slots, date, now, settings.MinBookingNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: found %d slots for staff=%s, date=%s, duration=%d",
		len(slots), staff.ID, types.FormatDate(date), duration)

	return &Response{
		StaffID:         staff.ID,
		Date:            date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
