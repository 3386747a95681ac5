package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/events"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/storagetest"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var monday = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) eventTypes() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	service   *Service
	repo      *bookingRepo.Repository
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	storagetest.InsertStaff(t, db, "s2")

	repo := bookingRepo.NewRepository(db, storagetest.Dialect)
	publisher := &recordingPublisher{}
	var recorder *metrics.Metrics

	return &fixture{
		service:   NewService(repo, txmanager.NewTransactionManager(db), publisher, recorder, logger.NewNop()),
		repo:      repo,
		publisher: publisher,
	}
}

func draft(staffID, start string, duration int) *domain.Booking {
	return &domain.Booking{
		StaffID:         staffID,
		CustomerID:      "c1",
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		CustomerPhone:   "+4512345678",
		ServiceIDs:      []string{"cut"},
		BookingDate:     monday,
		BookingTime:     types.MustTimeString(start),
		DurationMinutes: duration,
		TotalPrice:      decimal.RequireFromString("250"),
		PaymentMethod:   domain.PaymentCash,
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, domain.PaymentPending, created.PaymentStatus)
	assert.Equal(t, domain.KindIndividual, created.Kind)
	assert.Equal(t, []events.EventType{events.BookingCreated}, f.publisher.eventTypes())

	// соседние интервалы не пересекаются
	_, err = f.service.Create(ctx, draft("s1", "09:30", 30))
	require.NoError(t, err)
	_, err = f.service.Create(ctx, draft("s1", "10:30", 30))
	require.NoError(t, err)

	_, err = f.service.Create(ctx, draft("s1", "10:15", 30))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// другой мастер в то же время свободен
	_, err = f.service.Create(ctx, draft("s2", "10:00", 30))
	require.NoError(t, err)

	assert.Len(t, f.publisher.eventTypes(), 4, "no event for the rejected booking")
}

func TestService_Create_InvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(b *domain.Booking)
	}{
		{name: "no staff", mutate: func(b *domain.Booking) { b.StaffID = "" }},
		{name: "zero duration", mutate: func(b *domain.Booking) { b.DurationMinutes = 0 }},
		{name: "no services", mutate: func(b *domain.Booking) { b.ServiceIDs = nil }},
		{name: "past midnight", mutate: func(b *domain.Booking) { b.BookingTime = types.MustTimeString("23:45") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := draft("s1", "10:00", 30)
			tt.mutate(b)
			_, err := f.service.Create(context.Background(), b)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Create_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	const attempts = 10

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Create(context.Background(), draft("s1", "14:00", 30))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, ErrSlotConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	active, err := f.repo.ListActiveByStaffAndDate(context.Background(), "s1", monday, "")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestService_Reschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	moving, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)
	blocker, err := f.service.Create(ctx, draft("s1", "15:00", 60))
	require.NoError(t, err)

	_, err = f.service.Reschedule(ctx, moving.ID, monday, types.MustTimeString("11:00"), "")
	assert.ErrorIs(t, err, ErrInvalidState, "pending booking cannot become rescheduled")

	_, err = f.service.Confirm(ctx, moving.ID)
	require.NoError(t, err)

	_, err = f.service.Reschedule(ctx, moving.ID, monday, types.MustTimeString("15:30"), "")
	assert.ErrorIs(t, err, ErrSlotConflict)

	unchanged, err := f.service.GetByID(ctx, moving.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", unchanged.BookingTime.String())
	assert.Equal(t, domain.StatusConfirmed, unchanged.Status)

	// перенос внутри собственного интервала не конфликтует сам с собой
	moved, err := f.service.Reschedule(ctx, moving.ID, monday, types.MustTimeString("10:15"), "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRescheduled, moved.Status)

	tuesday := monday.AddDate(0, 0, 1)
	moved, err = f.service.Reschedule(ctx, moving.ID, tuesday, types.MustTimeString("15:00"), domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, moved.Status)

	stored, err := f.service.GetByID(ctx, moving.ID)
	require.NoError(t, err)
	assert.True(t, types.SameDate(tuesday, stored.BookingDate))
	assert.Equal(t, "15:00", stored.BookingTime.String())

	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, events.BookingRescheduled, last.Type)
	require.NotNil(t, last.PreviousTime)
	assert.Equal(t, "10:15", last.PreviousTime.String())

	_, err = f.service.Reschedule(ctx, "missing", monday, types.MustTimeString("09:00"), "")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.service.Reschedule(ctx, blocker.ID, monday, types.MustTimeString("09:00"), domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Confirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)

	confirmed, err := f.service.Confirm(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)

	_, err = f.service.Confirm(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.service.Cancel(ctx, b.ID, nil)
	require.NoError(t, err)
	_, err = f.service.Confirm(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.service.Confirm(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(ctx, b.ID, ptr.Ptr("sick"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, domain.PaymentCancelled, cancelled.PaymentStatus)

	again, err := f.service.Cancel(ctx, b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)
	assert.Equal(t, "sick", ptr.Value(again.CancellationReason))

	// освобожденный интервал сразу доступен
	_, err = f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)

	assert.Equal(t,
		[]events.EventType{events.BookingCreated, events.BookingCancelled, events.BookingCreated},
		f.publisher.eventTypes(),
	)

	_, err = f.service.Cancel(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, b.ID, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.service.UpdateStatus(ctx, b.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	completed, err := f.service.UpdateStatus(ctx, b.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)

	_, err = f.service.Cancel(ctx, b.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.service.UpdateStatus(ctx, b.ID, domain.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.service.UpdateStatus(ctx, b.ID, domain.BookingStatus("no_show"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// завершенное бронирование не занимает интервал
	_, err = f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)
}

func TestService_UpdateStatus_CancelDelegatesToCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)

	cancelled, err := f.service.UpdateStatus(ctx, b.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, []events.EventType{events.BookingCreated, events.BookingCancelled}, f.publisher.eventTypes())

	_, err = f.service.UpdateStatus(ctx, b.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidState, "cancelled booking cannot be cancelled again")
}

func TestService_UpdateDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)

	updated, err := f.service.UpdateDetails(ctx, b.ID, ptr.Ptr(domain.PaymentPaid), ptr.Ptr("regular"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, "regular", ptr.Value(updated.AdminNotes))

	_, err = f.service.UpdateDetails(ctx, b.ID, ptr.Ptr(domain.PaymentStatus("refunded")), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.UpdateDetails(ctx, "missing", nil, ptr.Ptr("x"))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, draft("s1", "10:00", 30))
	require.NoError(t, err)
	_, err = f.service.Create(ctx, draft("s2", "10:00", 30))
	require.NoError(t, err)

	got, err := f.service.List(ctx, domain.BookingsFilter{StaffID: ptr.Ptr("s2")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].StaffID)

	from, to := monday.AddDate(0, 0, 1), monday
	_, err = f.service.List(ctx, domain.BookingsFilter{StartDate: &from, EndDate: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
