package create_corporate_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	catalogRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/internal/service/bookings"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
	"github.com/m04kA/barbershop-booking/pkg/types"
	"github.com/m04kA/barbershop-booking/pkg/validation"
)

// UseCase use case для создания корпоративного бронирования
type UseCase struct {
	staffRepo     StaffRepository
	serviceRepo   ServiceRepository
	bookingRepo   BookingRepository
	breakRepo     BreakRepository
	corporateRepo CorporateRepository
	settings      SettingsProvider
	ledger        Ledger
	txManager     TransactionManager
	calculator    *availability.Calculator
	validator     *validation.Validator
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	breakRepo BreakRepository,
	corporateRepo CorporateRepository,
	settings SettingsProvider,
	ledger Ledger,
	txManager TransactionManager,
	calculator *availability.Calculator,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		staffRepo:     staffRepo,
		serviceRepo:   serviceRepo,
		bookingRepo:   bookingRepo,
		breakRepo:     breakRepo,
		corporateRepo: corporateRepo,
		settings:      settings,
		ledger:        ledger,
		txManager:     txManager,
		calculator:    calculator,
		validator:     validation.New(),
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case корпоративного бронирования.
// Бронирование занимает у мастера один непрерывный блок, длительность которого равна сумме
// услуг всех сотрудников. Запись в реестре и данные компании сохраняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCorporateBooking: company=%q, staff=%s, date=%s, time=%s, employees=%d",
		req.CompanyName, req.StaffID, types.FormatDate(req.Date), req.StartTime, len(req.Employees))

	// 1. Валидация входных данных
	if err := validateRequest(uc.validator, req); err != nil {
		uc.logger.Warn("CreateCorporateBooking: validation failed: %v", err)
		return nil, err
	}

	date := types.NormalizeDate(req.Date)
	now := uc.timeProvider.Now().In(uc.location)

	// 2. Настройки и окно бронирования
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateCorporateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if err := availability.CheckBookingWindow(date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateCorporateBooking: date validation failed: %v", err)
		return nil, mapWindowError(err)
	}

	// 3. Мастер
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateCorporateBooking: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateCorporateBooking: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateCorporateBooking: staff id=%s is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 4. Услуги всех сотрудников по порядку
	serviceIDs := flattenServices(req.Employees)
	services, err := uc.serviceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateCorporateBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("CreateCorporateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	duration, servicesPrice := totals(services)

	// Корпоративное обслуживание проходит по адресу компании
	travelFee := decimal.Zero
	if settings.HomeServiceEnabled {
		travelFee = settings.HomeServiceFee
	}

	// 5. Проверка доступности блока
	if err := uc.checkSlot(ctx, staff, date, req.StartTime, duration, now, settings.MinBookingNoticeMinutes); err != nil {
		return nil, err
	}

	paymentMethod := domain.PaymentMethod(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = domain.PaymentInvoice
	}
	address := companyAddress(req)

	booking := &domain.Booking{
		StaffID:         staff.ID,
		CustomerName:    req.ContactPerson,
		CustomerEmail:   req.CompanyEmail,
		CustomerPhone:   req.CompanyPhone,
		ServiceIDs:      serviceIDs,
		BookingDate:     date,
		BookingTime:     req.StartTime,
		DurationMinutes: duration,
		TotalPrice:      servicesPrice.Add(travelFee),
		Kind:            domain.KindCorporate,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   domain.PaymentPending,
		IsHomeService:   true,
		ServiceAddress:  &address,
		TravelFee:       travelFee,
		Notes:           req.Notes,
	}

	details := &domain.CorporateDetails{
		CompanyName:         req.CompanyName,
		ContactPerson:       req.ContactPerson,
		CompanyEmail:        req.CompanyEmail,
		CompanyPhone:        req.CompanyPhone,
		CompanyAddress:      req.CompanyAddress,
		CompanyCity:         req.CompanyCity,
		CompanyPostalCode:   req.CompanyPostalCode,
		Employees:           toDomainEmployees(req.Employees),
		ServicesPrice:       servicesPrice,
		CompanyTravelFee:    travelFee,
		SpecialRequirements: req.SpecialRequirements,
	}

	// 6. Реестр и данные компании в одной транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.ledger.Create(txCtx, booking)
		if err != nil {
			return err
		}

		details.BookingID = b.ID
		if _, err := uc.corporateRepo.Create(txCtx, details); err != nil {
			return fmt.Errorf("%w: failed to save corporate details: %w", ErrInternal, err)
		}

		created = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotConflict), txmanager.IsSerializationFailure(err):
			uc.logger.Warn("CreateCorporateBooking: slot %s %s taken concurrently: %v", types.FormatDate(date), req.StartTime, err)
			return nil, ErrSlotNoLongerAvailable
		case errors.Is(err, bookings.ErrInvalidInput):
			uc.logger.Warn("CreateCorporateBooking: ledger rejected booking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateCorporateBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateCorporateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateCorporateBooking: successfully created booking id=%s for company=%q", created.ID, req.CompanyName)
	return &Response{Booking: created, Details: details}, nil
}

// checkSlot проверяет, что блок помещается в свободное время мастера
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
		uc.logger.Warn("CreateCorporateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrSlotNoLongerAvailable, err)
	}

	existing, err := uc.bookingRepo.ListActiveByStaffAndDate(ctx, staff.ID, date, "")
	if err != nil {
		uc.logger.Error("CreateCorporateBooking: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	breaks, err := uc.breakRepo.ListForDate(ctx, staff.ID, date)
	if err != nil {
		uc.logger.Error("CreateCorporateBooking: failed to get breaks: %v", err)
		return fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	slots, err := uc.calculator.AvailableSlots(staff, date, duration, existing, breaks)
	if err != nil {
		uc.logger.Error("CreateCorporateBooking: failed to compute slots: %v", err)
		return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	if !availability.IsAvailable(slots, start) {
		uc.logger.Warn("CreateCorporateBooking: block %s %s (%d min) is not available for staff=%s",
			types.FormatDate(date), start, duration, staff.ID)
		return ErrSlotNoLongerAvailable
	}

	return nil
}

func flattenServices(employees []EmployeeRequest) []string {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ServiceIDs...)
	}
	return ids
}

func toDomainEmployees(employees []EmployeeRequest) []domain.EmployeeServices {
	out := make([]domain.EmployeeServices, 0, len(employees))
	for _, e := range employees {
		out = append(out, domain.EmployeeServices{
			EmployeeName: e.EmployeeName,
			ServiceIDs:   e.ServiceIDs,
			Notes:        e.Notes,
		})
	}
	return out
}

func totals(services []*domain.Service) (int, decimal.Decimal) {
	duration := 0
	price := decimal.Zero
	for _, s := range services {
		duration += s.DurationMinutes
		price = price.Add(s.Price)
	}
	return duration, price
}

func companyAddress(req *Request) string {
	parts := []string{strings.TrimSpace(req.CompanyAddress)}
	if pc := strings.TrimSpace(req.CompanyPostalCode + " " + req.CompanyCity); pc != "" {
		parts = append(parts, pc)
	}
	return strings.Join(parts, ", ")
}
