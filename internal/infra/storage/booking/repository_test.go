package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/storagetest"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var testDate = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

func newBooking(staffID, start string, duration int) *domain.Booking {
	return &domain.Booking{
		StaffID:         staffID,
		CustomerID:      "customer-1",
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		CustomerPhone:   "+4512345678",
		ServiceIDs:      []string{"cut", "beard"},
		BookingDate:     testDate,
		BookingTime:     types.MustTimeString(start),
		DurationMinutes: duration,
		TotalPrice:      decimal.RequireFromString("450.50"),
		Kind:            domain.KindIndividual,
		Status:          domain.StatusPending,
		PaymentMethod:   domain.PaymentCash,
		PaymentStatus:   domain.PaymentPending,
		TravelFee:       decimal.Zero,
		Notes:           ptr.Ptr("fade"),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	repo := NewRepository(db, storagetest.Dialect)
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("s1", "10:00", 45))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "s1", got.StaffID)
	assert.Equal(t, []string{"cut", "beard"}, got.ServiceIDs)
	assert.True(t, types.SameDate(testDate, got.BookingDate))
	assert.Equal(t, "10:00", got.BookingTime.String())
	assert.Equal(t, 45, got.DurationMinutes)
	assert.True(t, decimal.RequireFromString("450.50").Equal(got.TotalPrice))
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, domain.KindIndividual, got.Kind)
	assert.Equal(t, "fade", ptr.Value(got.Notes))
	assert.Nil(t, got.AdminNotes)
	assert.Nil(t, got.CancelledAt)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(storagetest.NewDB(t), storagetest.Dialect)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ListActiveByStaffAndDate(t *testing.T) {
	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	storagetest.InsertStaff(t, db, "s2")
	repo := NewRepository(db, storagetest.Dialect)
	ctx := context.Background()

	late, err := repo.Create(ctx, newBooking("s1", "14:00", 30))
	require.NoError(t, err)
	early, err := repo.Create(ctx, newBooking("s1", "09:00", 30))
	require.NoError(t, err)
	cancelled, err := repo.Create(ctx, newBooking("s1", "11:00", 30))
	require.NoError(t, err)
	require.NoError(t, repo.Cancel(ctx, cancelled.ID, ptr.Ptr("sick")))

	_, err = repo.Create(ctx, newBooking("s2", "10:00", 30))
	require.NoError(t, err)
	other := newBooking("s1", "10:00", 30)
	other.BookingDate = testDate.AddDate(0, 0, 1)
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	got, err := repo.ListActiveByStaffAndDate(ctx, "s1", testDate, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)

	got, err = repo.ListActiveByStaffAndDate(ctx, "s1", testDate, early.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)
}

func TestRepository_List(t *testing.T) {
	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	repo := NewRepository(db, storagetest.Dialect)
	ctx := context.Background()

	first, err := repo.Create(ctx, newBooking("s1", "09:00", 30))
	require.NoError(t, err)
	second := newBooking("s1", "09:00", 30)
	second.BookingDate = testDate.AddDate(0, 0, 2)
	second, err = repo.Create(ctx, second)
	require.NoError(t, err)
	require.NoError(t, repo.Cancel(ctx, second.ID, nil))

	active, err := repo.List(ctx, domain.BookingsFilter{StaffID: ptr.Ptr("s1")})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	all, err := repo.List(ctx, domain.BookingsFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	from := testDate.AddDate(0, 0, 1)
	ranged, err := repo.List(ctx, domain.BookingsFilter{StartDate: &from, IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, second.ID, ranged[0].ID)

	cancelled, err := repo.List(ctx, domain.BookingsFilter{Statuses: []domain.BookingStatus{domain.StatusCancelled}})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, domain.PaymentCancelled, cancelled[0].PaymentStatus)
	assert.NotNil(t, cancelled[0].CancelledAt)
}

func TestRepository_Updates(t *testing.T) {
	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	repo := NewRepository(db, storagetest.Dialect)
	ctx := context.Background()

	b, err := repo.Create(ctx, newBooking("s1", "09:00", 30))
	require.NoError(t, err)

	newDate := testDate.AddDate(0, 0, 1)
	require.NoError(t, repo.UpdateSchedule(ctx, b.ID, newDate, types.MustTimeString("15:30"), domain.StatusRescheduled))
	require.NoError(t, repo.UpdateDetails(ctx, b.ID, ptr.Ptr(domain.PaymentPaid), ptr.Ptr("VIP")))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, types.SameDate(newDate, got.BookingDate))
	assert.Equal(t, "15:30", got.BookingTime.String())
	assert.Equal(t, domain.StatusRescheduled, got.Status)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "VIP", ptr.Value(got.AdminNotes))

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.StatusCompleted))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.StatusConfirmed), ErrBookingNotFound)
	assert.ErrorIs(t, repo.Cancel(ctx, "missing", nil), ErrBookingNotFound)
}
