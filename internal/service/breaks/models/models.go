package models

import (
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Request модели

// CreateBreakRequest запрос на создание перерыва мастера
type CreateBreakRequest struct {
	StaffID       string           `json:"staffId"`
	StartDate     string           `json:"startDate"` // "2025-10-15"
	EndDate       string           `json:"endDate"`   // "2025-10-15", по умолчанию равна startDate
	StartTime     types.TimeString `json:"startTime"` // "12:00"
	EndTime       types.TimeString `json:"endTime"`   // "13:00"
	BreakType     string           `json:"breakType"`
	Reason        *string          `json:"reason,omitempty"`
	IsRecurring   bool             `json:"isRecurring"`
	RecurringDays []string         `json:"recurringDays,omitempty"` // ["monday", "friday"]
	CreatedBy     *string          `json:"createdBy,omitempty"`
}

// ToDomainBreak конвертирует запрос в domain модель
func (r *CreateBreakRequest) ToDomainBreak() (*domain.Break, error) {
	startDate, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	endDate := startDate
	if r.EndDate != "" {
		if endDate, err = types.ParseDate(r.EndDate); err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
	}

	days, err := parseWeekdays(r.RecurringDays)
	if err != nil {
		return nil, err
	}

	breakType := domain.BreakType(r.BreakType)
	if breakType == "" {
		breakType = domain.BreakRegular
	}

	return &domain.Break{
		StaffID:       r.StaffID,
		StartDate:     startDate,
		EndDate:       endDate,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Type:          breakType,
		Reason:        r.Reason,
		IsRecurring:   r.IsRecurring,
		RecurringDays: days,
		CreatedBy:     r.CreatedBy,
	}, nil
}

// UpdateBreakRequest запрос на обновление перерыва
// Все поля опциональны - обновляются только переданные значения
type UpdateBreakRequest struct {
	StartDate     *string           `json:"startDate,omitempty"`
	EndDate       *string           `json:"endDate,omitempty"`
	StartTime     *types.TimeString `json:"startTime,omitempty"`
	EndTime       *types.TimeString `json:"endTime,omitempty"`
	BreakType     *string           `json:"breakType,omitempty"`
	Reason        *string           `json:"reason,omitempty"`
	IsRecurring   *bool             `json:"isRecurring,omitempty"`
	RecurringDays []string          `json:"recurringDays,omitempty"`
}

// ApplyToBreak применяет обновления к существующему перерыву
func (r *UpdateBreakRequest) ApplyToBreak(b *domain.Break) error {
	if r.StartDate != nil {
		d, err := types.ParseDate(*r.StartDate)
		if err != nil {
			return fmt.Errorf("startDate: %w", err)
		}
		b.StartDate = d
	}
	if r.EndDate != nil {
		d, err := types.ParseDate(*r.EndDate)
		if err != nil {
			return fmt.Errorf("endDate: %w", err)
		}
		b.EndDate = d
	}
	if r.StartTime != nil {
		b.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		b.EndTime = *r.EndTime
	}
	if r.BreakType != nil {
		b.Type = domain.BreakType(*r.BreakType)
	}
	if r.Reason != nil {
		b.Reason = r.Reason
	}
	if r.IsRecurring != nil {
		b.IsRecurring = *r.IsRecurring
	}
	if r.RecurringDays != nil {
		days, err := parseWeekdays(r.RecurringDays)
		if err != nil {
			return err
		}
		b.RecurringDays = days
	}
	return nil
}

// Response модели

// BreakResponse ответ с данными перерыва
type BreakResponse struct {
	ID            string    `json:"id"`
	StaffID       string    `json:"staffId"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	BreakType     string    `json:"breakType"`
	Reason        *string   `json:"reason,omitempty"`
	IsRecurring   bool      `json:"isRecurring"`
	RecurringDays []string  `json:"recurringDays"`
	CreatedBy     *string   `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BreakListResponse ответ со списком перерывов
type BreakListResponse struct {
	Breaks []BreakResponse `json:"breaks"`
}

// FromDomainBreak конвертирует domain модель в DTO
func FromDomainBreak(b *domain.Break) *BreakResponse {
	if b == nil {
		return nil
	}

	days := make([]string, 0, len(b.RecurringDays))
	for _, d := range b.RecurringDays {
		days = append(days, domain.WeekdayName(d))
	}

	return &BreakResponse{
		ID:            b.ID,
		StaffID:       b.StaffID,
		StartDate:     types.FormatDate(b.StartDate),
		EndDate:       types.FormatDate(b.EndDate),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		BreakType:     string(b.Type),
		Reason:        b.Reason,
		IsRecurring:   b.IsRecurring,
		RecurringDays: days,
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBreakList конвертирует список domain моделей в DTO
func FromDomainBreakList(breaks []*domain.Break) *BreakListResponse {
	resp := &BreakListResponse{Breaks: make([]BreakResponse, 0, len(breaks))}
	for _, b := range breaks {
		if r := FromDomainBreak(b); r != nil {
			resp.Breaks = append(resp.Breaks, *r)
		}
	}
	return resp
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	seen := make(map[time.Weekday]bool, len(names))
	for _, name := range names {
		d, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}
