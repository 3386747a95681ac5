package breaks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	breakRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/breaks"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/internal/service/breaks/models"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Service сервис администрирования перерывов мастеров
type Service struct {
	breakRepo   BreakRepository
	staffRepo   StaffRepository
	invalidator SlotInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса перерывов.
// invalidator может быть nil, если кэш слотов отключен.
func NewService(
	breakRepo BreakRepository,
	staffRepo StaffRepository,
	invalidator SlotInvalidator,
	logger Logger,
) *Service {
	return &Service{
		breakRepo:   breakRepo,
		staffRepo:   staffRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create создает перерыв мастера
func (s *Service) Create(ctx context.Context, req *models.CreateBreakRequest) (*domain.Break, error) {
	s.logger.Info("Create: creating break for staff=%s %s..%s %s-%s",
		req.StaffID, req.StartDate, req.EndDate, req.StartTime, req.EndTime)

	b, err := req.ToDomainBreak()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := b.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.ensureStaff(ctx, "Create", b.StaffID); err != nil {
		return nil, err
	}

	created, err := s.breakRepo.Create(ctx, b)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, created.StaffID)
	s.logger.Info("Create: successfully created break id=%s", created.ID)
	return created, nil
}

// Update частично обновляет перерыв
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateBreakRequest) (*domain.Break, error) {
	s.logger.Info("Update: updating break id=%s", id)

	b, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if err := req.ApplyToBreak(b); err != nil {
		s.logger.Warn("Update: invalid request for break id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := b.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for break id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.breakRepo.Update(ctx, b)
	if err != nil {
		if errors.Is(err, breakRepo.ErrBreakNotFound) {
			return nil, ErrBreakNotFound
		}
		s.logger.Error("Update: repository error for break id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, updated.StaffID)
	s.logger.Info("Update: successfully updated break id=%s", id)
	return updated, nil
}

// Delete удаляет перерыв
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting break id=%s", id)

	b, err := s.get(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.breakRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, breakRepo.ErrBreakNotFound) {
			return ErrBreakNotFound
		}
		s.logger.Error("Delete: repository error for break id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, b.StaffID)
	s.logger.Info("Delete: successfully deleted break id=%s", id)
	return nil
}

// List возвращает перерывы мастера за период. Пустой staffID - перерывы всех мастеров.
func (s *Service) List(ctx context.Context, staffID string, from, to *time.Time) ([]*domain.Break, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	breaks, err := s.breakRepo.ListByStaff(ctx, staffID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return breaks, nil
}

// ListForDate возвращает перерывы, которые могут действовать в дату
func (s *Service) ListForDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Break, error) {
	breaks, err := s.breakRepo.ListForDate(ctx, staffID, date)
	if err != nil {
		s.logger.Error("ListForDate: repository error for staff=%s date=%s: %v", staffID, types.FormatDate(date), err)
		return nil, fmt.Errorf("%w: ListForDate - repository error: %v", ErrInternal, err)
	}
	return breaks, nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op, id string) (*domain.Break, error) {
	b, err := s.breakRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, breakRepo.ErrBreakNotFound) {
			s.logger.Warn("%s: break id=%s not found", op, id)
			return nil, ErrBreakNotFound
		}
		s.logger.Error("%s: repository error for break id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return b, nil
}

func (s *Service) ensureStaff(ctx context.Context, op, staffID string) error {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%s not found", op, staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("%s: failed to get staff id=%s: %v", op, staffID, err)
		return fmt.Errorf("%w: %s - failed to get staff: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, staffID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateStaff(ctx, staffID); err != nil {
		s.logger.Warn("invalidate: failed to drop cached slots of staff=%s: %v", staffID, err)
	}
}
