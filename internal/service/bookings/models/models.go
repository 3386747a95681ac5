package models

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	StaffID         *string    `json:"staffId,omitempty"`         // Фильтр по мастеру (опционально)
	CustomerID      *string    `json:"customerId,omitempty"`      // Фильтр по клиенту (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StaffID:         r.StaffID,
		CustomerID:      r.CustomerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string   `json:"id"`
	StaffID         string   `json:"staffId"`
	CustomerID      string   `json:"customerId"`
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail"`
	CustomerPhone   string   `json:"customerPhone"`
	ServiceIDs      []string `json:"serviceIds"`
	BookingDate     string   `json:"bookingDate"` // "2025-10-15"
	BookingTime     string   `json:"bookingTime"` // "10:00"
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	TotalPrice      string   `json:"totalPrice"`
	Kind            string   `json:"kind"`
	Status          string   `json:"status"`
	PaymentMethod   string   `json:"paymentMethod"`
	PaymentStatus   string   `json:"paymentStatus"`

	IsHomeService  bool    `json:"isHomeService"`
	ServiceAddress *string `json:"serviceAddress,omitempty"`
	TravelFee      string  `json:"travelFee"`

	Notes      *string `json:"notes,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		StaffID:            b.StaffID,
		CustomerID:         b.CustomerID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		ServiceIDs:         b.ServiceIDs,
		BookingDate:        types.FormatDate(b.BookingDate),
		BookingTime:        b.BookingTime.String(),
		DurationMinutes:    b.DurationMinutes,
		TotalPrice:         b.TotalPrice.StringFixed(2),
		Kind:               string(b.Kind),
		Status:             string(b.Status),
		PaymentMethod:      string(b.PaymentMethod),
		PaymentStatus:      string(b.PaymentStatus),
		IsHomeService:      b.IsHomeService,
		ServiceAddress:     b.ServiceAddress,
		TravelFee:          b.TravelFee.StringFixed(2),
		Notes:              b.Notes,
		AdminNotes:         b.AdminNotes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
