package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingSettings typed shop-wide booking settings
type BookingSettings struct {
	HomeServiceEnabled      bool
	HomeServiceFee          decimal.Decimal
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
	UpdatedAt               time.Time
}

// DefaultBookingSettings settings used until an administrator saves their own
func DefaultBookingSettings() *BookingSettings {
	return &BookingSettings{
		HomeServiceEnabled:      true,
		HomeServiceFee:          decimal.RequireFromString(DefaultHomeServiceFee),
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
