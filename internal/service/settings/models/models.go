package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек бронирования
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	HomeServiceEnabled      *bool            `json:"homeServiceEnabled,omitempty"`
	HomeServiceFee          *decimal.Decimal `json:"homeServiceFee,omitempty"`
	AdvanceBookingDays      *int             `json:"advanceBookingDays,omitempty"`      // 0 = без ограничений
	MinBookingNoticeMinutes *int             `json:"minBookingNoticeMinutes,omitempty"` // Минимальное время до бронирования
}

// ApplyToSettings применяет обновления к существующим настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.BookingSettings) {
	if r.HomeServiceEnabled != nil {
		s.HomeServiceEnabled = *r.HomeServiceEnabled
	}
	if r.HomeServiceFee != nil {
		s.HomeServiceFee = *r.HomeServiceFee
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
}

// Response модели

// SettingsResponse ответ с настройками бронирования
type SettingsResponse struct {
	HomeServiceEnabled      bool       `json:"homeServiceEnabled"`
	HomeServiceFee          string     `json:"homeServiceFee"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		HomeServiceEnabled:      s.HomeServiceEnabled,
		HomeServiceFee:          s.HomeServiceFee.StringFixed(2),
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
