package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// UseCase use case для изменения бронирования администратором
type UseCase struct {
	staffRepo    StaffRepository
	bookingRepo  BookingRepository
	breakRepo    BreakRepository
	settings     SettingsProvider
	ledger       Ledger
	txManager    TransactionManager
	calculator   *availability.Calculator
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	breakRepo BreakRepository,
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
		staffRepo:    staffRepo,
		bookingRepo:  bookingRepo,
		breakRepo:    breakRepo,
		settings:     settings,
		ledger:       ledger,
		txManager:    txManager,
		calculator:   calculator,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute применяет изменения к бронированию.
// Перенос проходит ту же проверку доступности, что и создание, исключая само бронирование.
// Смена статуса идет по таблице переходов, оплата и заметки обновляются последними.
// Все изменения выполняются в одной транзакции: при ошибке бронирование остается прежним.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("UpdateBooking: booking id=%s", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		result, err = uc.apply(txCtx, req)
		return err
	})
	if err != nil {
		if isUseCaseError(err) {
			return nil, err
		}
		uc.logger.Warn("UpdateBooking: transaction failed for booking id=%s: %v", req.BookingID, err)
		return nil, mapLedgerError(err)
	}

	uc.logger.Info("UpdateBooking: booking id=%s updated, status=%s", result.ID, result.Status)
	return result, nil
}

func (uc *UseCase) apply(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 2. Текущее состояние бронирования
	current, err := uc.ledger.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Warn("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, mapLedgerError(err)
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		s := domain.BookingStatus(*req.Status)
		status = &s
	}

	result := current

	// 3. Перенос
	if uc.isMove(req, current) {
		target := domain.BookingStatus("")
		if status != nil {
			if *status != domain.StatusRescheduled && *status != domain.StatusConfirmed {
				uc.logger.Warn("UpdateBooking: status %s cannot be combined with a move", *status)
				return nil, fmt.Errorf("%w: status %s cannot be combined with a date or time change", ErrInvalidInput, *status)
			}
			target = *status
			status = nil
		}

		result, err = uc.reschedule(ctx, req, current, target)
		if err != nil {
			return nil, err
		}
	}

	// 4. Смена статуса
	if status != nil && *status != result.Status {
		result, err = uc.ledger.UpdateStatus(ctx, req.BookingID, *status)
		if err != nil {
			uc.logger.Warn("UpdateBooking: failed to set status %s for booking id=%s: %v", *status, req.BookingID, err)
			return nil, mapLedgerError(err)
		}
	}

	// 5. Оплата и заметки администратора
	if req.PaymentStatus != nil || req.AdminNotes != nil {
		var paymentStatus *domain.PaymentStatus
		if req.PaymentStatus != nil {
			ps := domain.PaymentStatus(*req.PaymentStatus)
			paymentStatus = &ps
		}

		result, err = uc.ledger.UpdateDetails(ctx, req.BookingID, paymentStatus, req.AdminNotes)
		if err != nil {
			uc.logger.Warn("UpdateBooking: failed to update details of booking id=%s: %v", req.BookingID, err)
			return nil, mapLedgerError(err)
		}
	}

	return result, nil
}

// isMove сообщает, меняет ли запрос дату или время бронирования
func (uc *UseCase) isMove(req *Request, current *domain.Booking) bool {
	if req.Date != nil && !types.SameDate(*req.Date, current.BookingDate) {
		return true
	}
	return req.StartTime != nil && !req.StartTime.Equal(current.BookingTime)
}

func (uc *UseCase) reschedule(ctx context.Context, req *Request, current *domain.Booking, target domain.BookingStatus) (*domain.Booking, error) {
	date := current.BookingDate
	if req.Date != nil {
		date = types.NormalizeDate(*req.Date)
	}
	start := current.BookingTime
	if req.StartTime != nil {
		start = *req.StartTime
	}

	if current.Status.IsTerminal() {
		uc.logger.Warn("UpdateBooking: booking id=%s is %s and cannot be moved", current.ID, current.Status)
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, domain.NewInvalidTransitionError(current.Status, domain.StatusRescheduled))
	}

	now := uc.timeProvider.Now().In(uc.location)

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if err := availability.CheckBookingWindow(date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("UpdateBooking: date validation failed: %v", err)
		return nil, mapWindowError(err)
	}
	if err := availability.CheckMinNotice(date, start, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("UpdateBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSlotNoLongerAvailable, err)
	}

	staff, err := uc.staffRepo.GetByID(ctx, current.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("UpdateBooking: staff id=%s of booking id=%s not found", current.StaffID, current.ID)
			return nil, fmt.Errorf("%w: staff %s not found", ErrSlotNoLongerAvailable, current.StaffID)
		}
		uc.logger.Error("UpdateBooking: failed to get staff id=%s: %v", current.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	existing, err := uc.bookingRepo.ListActiveByStaffAndDate(ctx, staff.ID, date, current.ID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	breaks, err := uc.breakRepo.ListForDate(ctx, staff.ID, date)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get breaks: %v", err)
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	slots, err := uc.calculator.AvailableSlots(staff, date, current.DurationMinutes, existing, breaks)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}
	if !availability.IsAvailable(slots, start) {
		uc.logger.Warn("UpdateBooking: slot %s %s is not available for booking id=%s", types.FormatDate(date), start, current.ID)
		return nil, ErrSlotNoLongerAvailable
	}

	moved, err := uc.ledger.Reschedule(ctx, current.ID, date, start, target)
	if err != nil {
		uc.logger.Warn("UpdateBooking: failed to reschedule booking id=%s: %v", current.ID, err)
		return nil, mapLedgerError(err)
	}

	uc.logger.Info("UpdateBooking: booking id=%s moved to %s %s", current.ID, types.FormatDate(date), start)
	return moved, nil
}
