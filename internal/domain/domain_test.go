package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

func TestCanTransition(t *testing.T) {
	all := []BookingStatus{StatusPending, StatusConfirmed, StatusRescheduled, StatusCancelled, StatusCompleted}
	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusPending:     {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:   {StatusRescheduled: true, StatusCancelled: true, StatusCompleted: true},
		StatusRescheduled: {StatusConfirmed: true, StatusCancelled: true, StatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestBooking_TransitionTo(t *testing.T) {
	b := &Booking{Status: StatusPending}
	require.NoError(t, b.TransitionTo(StatusConfirmed))
	assert.Equal(t, StatusConfirmed, b.Status)

	b = &Booking{Status: StatusCompleted}
	err := b.TransitionTo(StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StatusCompleted, b.Status)
}

func TestBookingStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.True(t, StatusRescheduled.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestPaymentStatus_IsValid(t *testing.T) {
	assert.True(t, PaymentPending.IsValid())
	assert.True(t, PaymentPaid.IsValid())
	assert.True(t, PaymentCancelled.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("rescheduled")
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, s)

	_, err = ParseBookingStatus("no_show")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: 600, End: 660} // 10:00-11:00

	assert.True(t, base.Overlaps(Interval{Start: 630, End: 690}))
	assert.True(t, base.Overlaps(Interval{Start: 540, End: 601}))
	assert.True(t, base.Overlaps(Interval{Start: 610, End: 620}))
	assert.False(t, base.Overlaps(Interval{Start: 660, End: 720}), "touching at end")
	assert.False(t, base.Overlaps(Interval{Start: 540, End: 600}), "touching at start")
}

func TestBooking_Interval(t *testing.T) {
	b := &Booking{BookingTime: types.MustTimeString("10:30"), DurationMinutes: 45}
	assert.Equal(t, Interval{Start: 630, End: 675}, b.Interval())

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "11:15", end.String())
}

func TestBreak_AppliesOn(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	single := &Break{StartDate: monday, EndDate: monday}
	assert.True(t, single.AppliesOn(monday))
	assert.False(t, single.AppliesOn(tuesday))

	recurring := &Break{
		StartDate:     monday,
		EndDate:       monday.AddDate(0, 0, 30),
		IsRecurring:   true,
		RecurringDays: []time.Weekday{time.Monday},
	}
	assert.True(t, recurring.AppliesOn(monday.AddDate(0, 0, 7)))
	assert.False(t, recurring.AppliesOn(tuesday))
	assert.False(t, recurring.AppliesOn(monday.AddDate(0, 0, 35)), "outside the date range")
}

func TestBreak_Validate(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	valid := func() *Break {
		return &Break{
			StaffID:   "s1",
			StartDate: day,
			EndDate:   day,
			StartTime: types.MustTimeString("12:00"),
			EndTime:   types.MustTimeString("13:00"),
			Type:      BreakLunch,
		}
	}

	require.NoError(t, valid().Validate())

	b := valid()
	b.EndTime = types.MustTimeString("12:00")
	assert.ErrorIs(t, b.Validate(), ErrInvalidBreak)

	b = valid()
	b.EndDate = day.AddDate(0, 0, -1)
	assert.ErrorIs(t, b.Validate(), ErrInvalidBreak)

	b = valid()
	b.IsRecurring = true
	assert.ErrorIs(t, b.Validate(), ErrInvalidBreak)

	b = valid()
	b.Type = "nap"
	assert.ErrorIs(t, b.Validate(), ErrInvalidBreak)
}

func TestWeeklySchedule_Defaults(t *testing.T) {
	w := DefaultWeeklySchedule()
	sunday := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	saturday := sunday.AddDate(0, 0, -1)

	assert.False(t, w.For(sunday).Enabled)
	assert.Equal(t, "10:00", w.For(saturday).Start.String())
	assert.Equal(t, "16:00", w.For(saturday).End.String())
	assert.False(t, WeeklySchedule{}.For(saturday).Enabled)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	_, err = ParseWeekday("funday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeeklySchedule_JSONRoundTrip(t *testing.T) {
	data, err := MarshalWeeklySchedule(DefaultWeeklySchedule())
	require.NoError(t, err)

	parsed, err := UnmarshalWeeklySchedule(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeeklySchedule(), parsed)

	_, err = UnmarshalWeeklySchedule(`{"caturday": {"enabled": true}}`)
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}
