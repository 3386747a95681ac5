package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/events"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Операции для метрик
const (
	opCreate     = "create"
	opReschedule = "reschedule"
	opCancel     = "cancel"
	opConfirm    = "confirm"
	opStatus     = "status"
	opDetails    = "details"
)

const minutesPerDay = 24 * 60

// Service реестр бронирований.
// Единственный компонент, изменяющий занятые интервалы мастеров: проверка пересечений
// и запись выполняются в одной сериализуемой транзакции.
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	recorder Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     recorder,
		logger:      logger,
	}
}

// Create сохраняет новое бронирование в статусе pending.
// Возвращает ErrSlotConflict, если интервал пересекается с активным бронированием мастера,
// в том числе когда конкурентная транзакция успела занять его раньше.
func (s *Service) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.logger.Info("Create: staff=%s date=%s time=%s duration=%d",
		booking.StaffID, types.FormatDate(booking.BookingDate), booking.BookingTime, booking.DurationMinutes)

	if err := validateBooking(booking); err != nil {
		return nil, s.fail(opCreate, "Create", err)
	}

	booking.BookingDate = types.NormalizeDate(booking.BookingDate)
	booking.Status = domain.StatusPending
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = domain.PaymentPending
	}
	if booking.Kind == "" {
		booking.Kind = domain.KindIndividual
	}

	var created *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, booking.StaffID, booking.BookingDate, booking.Interval(), ""); err != nil {
			return err
		}

		var err error
		created, err = s.bookingRepo.Create(ctx, booking)
		if err != nil {
			return err
		}

		s.publishAfterCommit(ctx, events.NewBookingEvent(events.BookingCreated, created))
		return nil
	})
	if err != nil {
		return nil, s.fail(opCreate, "Create", err)
	}

	s.metrics.IncBookingOperation(opCreate, metrics.ResultSuccess)
	s.logger.Info("Create: booking id=%s created for staff=%s", created.ID, created.StaffID)
	return created, nil
}

// Reschedule переносит бронирование на новую дату и время.
// targetStatus - rescheduled (по умолчанию) или confirmed. При конфликте бронирование не меняется.
func (s *Service) Reschedule(ctx context.Context, id string, newDate time.Time, newTime types.TimeString, targetStatus domain.BookingStatus) (*domain.Booking, error) {
	s.logger.Info("Reschedule: booking id=%s to date=%s time=%s status=%s", id, types.FormatDate(newDate), newTime, targetStatus)

	if targetStatus == "" {
		targetStatus = domain.StatusRescheduled
	}
	if targetStatus != domain.StatusRescheduled && targetStatus != domain.StatusConfirmed {
		return nil, s.fail(opReschedule, "Reschedule", fmt.Errorf("%w: target status must be rescheduled or confirmed, got %q", ErrInvalidInput, targetStatus))
	}
	if newDate.IsZero() || newTime.IsZero() {
		return nil, s.fail(opReschedule, "Reschedule", fmt.Errorf("%w: date and time are required", ErrInvalidInput))
	}
	newDate = types.NormalizeDate(newDate)

	var updated *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		current, err := s.get(ctx, id)
		if err != nil {
			return err
		}

		if current.Status != targetStatus && !domain.CanTransition(current.Status, targetStatus) {
			return fmt.Errorf("%w: %w", ErrInvalidState, domain.NewInvalidTransitionError(current.Status, targetStatus))
		}

		moved := *current
		moved.BookingDate = newDate
		moved.BookingTime = newTime
		moved.Status = targetStatus
		if moved.Interval().End > minutesPerDay {
			return fmt.Errorf("%w: booking must end by 24:00", ErrInvalidInput)
		}

		if err := s.ensureFree(ctx, current.StaffID, newDate, moved.Interval(), current.ID); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateSchedule(ctx, id, newDate, newTime, targetStatus); err != nil {
			return s.mapRepoError(err)
		}
		moved.UpdatedAt = time.Now().UTC()

		event := events.NewBookingEvent(events.BookingRescheduled, &moved)
		event.PreviousDate = &current.BookingDate
		event.PreviousTime = &current.BookingTime
		s.publishAfterCommit(ctx, event)

		updated = &moved
		return nil
	})
	if err != nil {
		return nil, s.fail(opReschedule, "Reschedule", err)
	}

	s.metrics.IncBookingOperation(opReschedule, metrics.ResultSuccess)
	s.logger.Info("Reschedule: booking id=%s moved to %s %s", id, types.FormatDate(newDate), newTime)
	return updated, nil
}

// Confirm подтверждает бронирование. Допустим только переход pending -> confirmed.
func (s *Service) Confirm(ctx context.Context, id string) (*domain.Booking, error) {
	s.logger.Info("Confirm: booking id=%s", id)

	var confirmed *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.get(ctx, id)
		if err != nil {
			return err
		}

		if current.Status != domain.StatusPending {
			return fmt.Errorf("%w: %w", ErrInvalidState, domain.NewInvalidTransitionError(current.Status, domain.StatusConfirmed))
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
			return s.mapRepoError(err)
		}
		current.Status = domain.StatusConfirmed
		current.UpdatedAt = time.Now().UTC()

		s.publishAfterCommit(ctx, events.NewBookingEvent(events.BookingConfirmed, current))
		confirmed = current
		return nil
	})
	if err != nil {
		return nil, s.fail(opConfirm, "Confirm", err)
	}

	s.metrics.IncBookingOperation(opConfirm, metrics.ResultSuccess)
	s.logger.Info("Confirm: booking id=%s confirmed", id)
	return confirmed, nil
}

// Cancel отменяет бронирование, освобождая его интервал.
// Повторная отмена ничего не меняет, отмена завершенного бронирования возвращает ErrInvalidState.
func (s *Service) Cancel(ctx context.Context, id string, reason *string) (*domain.Booking, error) {
	s.logger.Info("Cancel: booking id=%s", id)

	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return nil, s.fail(opCancel, "Cancel", fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength))
	}

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.get(ctx, id)
		if err != nil {
			return err
		}

		if current.Status == domain.StatusCancelled {
			s.logger.Info("Cancel: booking id=%s already cancelled", id)
			cancelled = current
			return nil
		}
		if !domain.CanTransition(current.Status, domain.StatusCancelled) {
			return fmt.Errorf("%w: %w", ErrInvalidState, domain.NewInvalidTransitionError(current.Status, domain.StatusCancelled))
		}

		if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
			return s.mapRepoError(err)
		}
		now := time.Now().UTC()
		current.Status = domain.StatusCancelled
		current.PaymentStatus = domain.PaymentCancelled
		current.CancellationReason = reason
		current.CancelledAt = &now
		current.UpdatedAt = now

		s.publishAfterCommit(ctx, events.NewBookingEvent(events.BookingCancelled, current))
		cancelled = current
		return nil
	})
	if err != nil {
		return nil, s.fail(opCancel, "Cancel", err)
	}

	s.metrics.IncBookingOperation(opCancel, metrics.ResultSuccess)
	s.logger.Info("Cancel: booking id=%s cancelled", id)
	return cancelled, nil
}

// UpdateStatus переводит бронирование в статус по таблице переходов.
// Отмена делегируется Cancel, остальные статусы проверяются TransitionTo.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	switch status {
	case domain.StatusCancelled:
		return s.Cancel(ctx, id, nil)
	case domain.StatusPending:
		return nil, s.fail(opStatus, "UpdateStatus", fmt.Errorf("%w: cannot return a booking to pending", ErrInvalidState))
	}

	s.logger.Info("UpdateStatus: booking id=%s to status=%s", id, status)

	if _, err := domain.ParseBookingStatus(string(status)); err != nil {
		return nil, s.fail(opStatus, "UpdateStatus", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == status {
			updated = current
			return nil
		}

		if err := current.TransitionTo(status); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
			return s.mapRepoError(err)
		}
		current.UpdatedAt = time.Now().UTC()

		s.publishAfterCommit(ctx, events.NewBookingEvent(eventForStatus(status), current))
		updated = current
		return nil
	})
	if err != nil {
		return nil, s.fail(opStatus, "UpdateStatus", err)
	}

	s.metrics.IncBookingOperation(opStatus, metrics.ResultSuccess)
	s.logger.Info("UpdateStatus: booking id=%s now %s", id, status)
	return updated, nil
}

// UpdateDetails обновляет статус оплаты и заметки администратора
func (s *Service) UpdateDetails(ctx context.Context, id string, paymentStatus *domain.PaymentStatus, adminNotes *string) (*domain.Booking, error) {
	s.logger.Info("UpdateDetails: booking id=%s", id)

	if paymentStatus != nil && !paymentStatus.IsValid() {
		return nil, s.fail(opDetails, "UpdateDetails", fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *paymentStatus))
	}
	if adminNotes != nil && len(*adminNotes) > domain.MaxNotesLength {
		return nil, s.fail(opDetails, "UpdateDetails", fmt.Errorf("%w: admin notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength))
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.UpdateDetails(ctx, id, paymentStatus, adminNotes); err != nil {
			return s.mapRepoError(err)
		}

		var err error
		updated, err = s.get(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(opDetails, "UpdateDetails", err)
	}

	s.metrics.IncBookingOperation(opDetails, metrics.ResultSuccess)
	return updated, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, err
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// List возвращает бронирования по фильтру
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return bookings, nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	return booking, nil
}

// ensureFree проверяет, что интервал свободен у мастера на дату.
// Внутри транзакции postgres строки бронирований блокируются до коммита.
func (s *Service) ensureFree(ctx context.Context, staffID string, date time.Time, candidate domain.Interval, excludeID string) error {
	existing, err := s.bookingRepo.ListActiveByStaffAndDate(ctx, staffID, date, excludeID)
	if err != nil {
		return err
	}

	if availability.Conflicts(candidate, staffID, date, existing, excludeID) {
		return fmt.Errorf("%w: staff=%s date=%s interval=[%d,%d)",
			ErrSlotConflict, staffID, types.FormatDate(date), candidate.Start, candidate.End)
	}
	return nil
}

func (s *Service) publishAfterCommit(ctx context.Context, event events.BookingEvent) {
	if s.publisher == nil {
		return
	}
	dbmetrics.AfterCommit(ctx, func(ctx context.Context) {
		s.publisher.Publish(ctx, event)
	})
}

func (s *Service) mapRepoError(err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	return err
}

// fail логирует ошибку операции, учитывает её в метриках и приводит к ошибке сервиса
func (s *Service) fail(op, name string, err error) error {
	switch {
	case errors.Is(err, ErrSlotConflict):
		s.metrics.IncBookingOperation(op, metrics.ResultConflict)
		s.logger.Warn("%s: %v", name, err)
		return err
	case txmanager.IsSerializationFailure(err):
		s.metrics.IncBookingOperation(op, metrics.ResultConflict)
		s.logger.Warn("%s: concurrent write lost: %v", name, err)
		return fmt.Errorf("%w: concurrent write: %v", ErrSlotConflict, err)
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidInput):
		s.metrics.IncBookingOperation(op, metrics.ResultRejected)
		s.logger.Warn("%s: %v", name, err)
		return err
	default:
		s.metrics.IncBookingOperation(op, metrics.ResultError)
		s.logger.Error("%s: %v", name, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, name, err)
	}
}

func validateBooking(b *domain.Booking) error {
	switch {
	case b.StaffID == "":
		return fmt.Errorf("%w: staff is required", ErrInvalidInput)
	case b.BookingDate.IsZero():
		return fmt.Errorf("%w: booking date is required", ErrInvalidInput)
	case b.BookingTime.IsZero():
		return fmt.Errorf("%w: booking time is required", ErrInvalidInput)
	case b.DurationMinutes <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	case len(b.ServiceIDs) == 0:
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	case b.Interval().End > minutesPerDay:
		return fmt.Errorf("%w: booking must end by 24:00", ErrInvalidInput)
	}
	return nil
}

func eventForStatus(status domain.BookingStatus) events.EventType {
	switch status {
	case domain.StatusConfirmed:
		return events.BookingConfirmed
	case domain.StatusRescheduled:
		return events.BookingRescheduled
	case domain.StatusCompleted:
		return events.BookingCompleted
	case domain.StatusCancelled:
		return events.BookingCancelled
	}
	return events.BookingCreated
}
