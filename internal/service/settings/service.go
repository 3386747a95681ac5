package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/barbershop-booking/internal/domain"
	settingsRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/settings"
	"github.com/m04kA/barbershop-booking/internal/service/settings/models"
)

// Service сервис настроек бронирования
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает текущие настройки.
// Пока администратор их не сохранял, возвращаются значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*domain.BookingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultBookingSettings(), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return settings, nil
}

// Update частично обновляет настройки
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*domain.BookingSettings, error) {
	s.logger.Info("Update: updating booking settings")

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Применяем обновления к копии и валидируем результат
	updated := *current
	req.ApplyToSettings(&updated)

	if err := validateSettings(&updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved (homeService=%t, fee=%s, advanceDays=%d, noticeMinutes=%d)",
		saved.HomeServiceEnabled, saved.HomeServiceFee.StringFixed(2), saved.AdvanceBookingDays, saved.MinBookingNoticeMinutes)
	return saved, nil
}

func validateSettings(s *domain.BookingSettings) error {
	if s.HomeServiceFee.IsNegative() {
		return fmt.Errorf("%w: homeServiceFee must not be negative", ErrInvalidInput)
	}

	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if s.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
