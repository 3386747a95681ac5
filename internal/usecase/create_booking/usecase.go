package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	catalogRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/internal/service/bookings"
	"github.com/m04kA/barbershop-booking/pkg/types"
	"github.com/m04kA/barbershop-booking/pkg/validation"
)

// UseCase use case для создания индивидуального бронирования
type UseCase struct {
	staffRepo    StaffRepository
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	breakRepo    BreakRepository
	settings     SettingsProvider
	ledger       Ledger
	calculator   *availability.Calculator
	validator    *validation.Validator
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	breakRepo BreakRepository,
	settings SettingsProvider,
	ledger Ledger,
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
		ledger:       ledger,
		calculator:   calculator,
		validator:    validation.New(),
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Доступность слота проверяется дважды: по календарю мастера здесь и атомарно в реестре бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: staff=%s, date=%s, time=%s, services=%v",
		req.StaffID, types.FormatDate(req.Date), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(uc.validator, req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := types.NormalizeDate(req.Date)
	now := uc.timeProvider.Now().In(uc.location)

	// 2. Настройки бронирования
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Окно бронирования
	if err := availability.CheckBookingWindow(date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, mapWindowError(err)
	}

	// 4. Мастер
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%s is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 5. Услуги: длительность и стоимость
	services, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	duration, price := totals(services)

	// 6. Выезд мастера
	travelFee := decimal.Zero
	if req.IsHomeService {
		if !settings.HomeServiceEnabled {
			uc.logger.Warn("CreateBooking: home service is disabled")
			return nil, ErrHomeServiceUnavailable
		}
		travelFee = settings.HomeServiceFee
	}

	// 7. Повторная проверка доступности слота
	if err := uc.checkSlot(ctx, staff, date, req.StartTime, duration, now, settings.MinBookingNoticeMinutes); err != nil {
		return nil, err
	}

	// 8. Атомарное создание в реестре
	paymentMethod := domain.PaymentMethod(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}

	booking := &domain.Booking{
		StaffID:         staff.ID,
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ServiceIDs:      req.ServiceIDs,
		BookingDate:     date,
		BookingTime:     req.StartTime,
		DurationMinutes: duration,
		TotalPrice:      price.Add(travelFee),
		Kind:            domain.KindIndividual,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   domain.PaymentPending,
		IsHomeService:   req.IsHomeService,
		TravelFee:       travelFee,
		Notes:           req.Notes,
	}
	if req.IsHomeService {
		booking.ServiceAddress = req.ServiceAddress
	}

	created, err := uc.ledger.Create(ctx, booking)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotConflict):
			uc.logger.Warn("CreateBooking: slot %s %s taken concurrently", types.FormatDate(date), req.StartTime)
			return nil, ErrSlotNoLongerAvailable
		case errors.Is(err, bookings.ErrInvalidInput):
			uc.logger.Warn("CreateBooking: ledger rejected booking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)
	return created, nil
}

// checkSlot проверяет, что время начала входит в свободные слоты мастера и не нарушает
// минимальное время до записи
func (uc *UseCase) checkSlot(
	ctx context.Context,
	staff *domain.Staff,
	date time.Time,
	start types.TimeString,
	duration int,
	now time.Time,
	minNoticeMinutes int,
) error {
	if err := availability.CheckMinNotice(date, start, now, minNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrSlotNoLongerAvailable, err)
	}

	existing, err := uc.bookingRepo.ListActiveByStaffAndDate(ctx, staff.ID, date, "")
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	breaks, err := uc.breakRepo.ListForDate(ctx, staff.ID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get breaks: %v", err)
		return fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	slots, err := uc.calculator.AvailableSlots(staff, date, duration, existing, breaks)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
		return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	if !availability.IsAvailable(slots, start) {
		uc.logger.Warn("CreateBooking: slot %s %s (%d min) is not available for staff=%s",
			types.FormatDate(date), start, duration, staff.ID)
		return ErrSlotNoLongerAvailable
	}

	return nil
}

// totals суммирует длительность и стоимость услуг
func totals(services []*domain.Service) (int, decimal.Decimal) {
	duration := 0
	price := decimal.Zero
	for _, s := range services {
		duration += s.DurationMinutes
		price = price.Add(s.Price)
	}
	return duration, price
}
