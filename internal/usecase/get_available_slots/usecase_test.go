package get_available_slots

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/infra/cache/slots"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	breakRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/breaks"
	catalogRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/storagetest"
	settingsService "github.com/m04kA/barbershop-booking/internal/service/settings"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var (
	monday = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2030, 3, 10, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc       *UseCase
	clock    *fixedTime
	cache    *slots.MemoryCache
	bookings *bookingRepo.Repository
	breaks   *breakRepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	storagetest.InsertService(t, db, "cut", 30, "25.00")
	storagetest.InsertService(t, db, "beard", 15, "10.00")

	f := &fixture{
		clock:    &fixedTime{now: time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)},
		cache:    slots.NewMemoryCache(time.Minute),
		bookings: bookingRepo.NewRepository(db, storagetest.Dialect),
		breaks:   breakRepo.NewRepository(db, storagetest.Dialect),
	}

	log := logger.NewNop()
	f.uc = NewUseCase(
		staffRepo.NewRepository(db, storagetest.Dialect),
		catalogRepo.NewRepository(db, storagetest.Dialect),
		f.bookings,
		f.breaks,
		settingsService.NewService(settingsRepo.NewRepository(db, storagetest.Dialect), log),
		f.cache,
		nil,
		availability.NewCalculator(domain.DefaultSlotGranularityMinutes),
		time.UTC,
		log,
	)
	f.uc.timeProvider = f.clock
	return f
}

func (f *fixture) book(t *testing.T, start string, duration int) {
	t.Helper()
	_, err := f.bookings.Create(context.Background(), &domain.Booking{
		StaffID:         "s1",
		CustomerName:    "Anna",
		ServiceIDs:      []string{"cut"},
		BookingDate:     monday,
		BookingTime:     types.MustTimeString(start),
		DurationMinutes: duration,
		TotalPrice:      decimal.NewFromInt(25),
		Kind:            domain.KindIndividual,
		Status:          domain.StatusConfirmed,
		PaymentMethod:   domain.PaymentCash,
		PaymentStatus:   domain.PaymentPending,
	})
	require.NoError(t, err)
}

func slotStrings(in []types.TimeString) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.String())
	}
	return out
}

func TestUseCase_DefaultDuration(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{StaffID: "s1", Date: monday})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.DurationMinutes)
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, "09:00", resp.Slots[0].String())
	assert.Equal(t, "17:30", resp.Slots[17].String())
}

func TestUseCase_BookingsAndBreaks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "10:00", 60)
	_, err := f.breaks.Create(ctx, &domain.Break{
		StaffID:   "s1",
		StartDate: monday,
		EndDate:   monday,
		StartTime: types.MustTimeString("12:00"),
		EndTime:   types.MustTimeString("13:00"),
		Type:      domain.BreakLunch,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{StaffID: "s1", Date: monday, ServiceIDs: []string{"cut", "beard"}})
	require.NoError(t, err)

	got := slotStrings(resp.Slots)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, []string{"09:00"}, got[:1])
	assert.NotContains(t, got, "09:30", "09:30+45 overlaps the 10:00 booking")
	assert.Contains(t, got, "11:00")
	assert.NotContains(t, got, "11:30")
	assert.NotContains(t, got, "12:30")
	assert.Contains(t, got, "13:00")
	assert.Equal(t, "17:00", got[len(got)-1])
}

func TestUseCase_Cache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &Request{StaffID: "s1", Date: monday, DurationMinutes: ptr.Ptr(60)}

	first, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	// запись в обход реестра не сбрасывает кэш
	f.book(t, "09:00", 60)
	cached, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.Slots, cached.Slots)

	require.NoError(t, f.cache.InvalidateStaff(ctx, "s1"))
	fresh, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.NotContains(t, slotStrings(fresh.Slots), "09:00")
	assert.Len(t, fresh.Slots, len(first.Slots)-2)
}

// interleavedBookings выполняет hook сразу после первого чтения бронирований,
// имитируя запись, закоммиченную между чтением базы и записью в кэш
type interleavedBookings struct {
	BookingRepository
	once sync.Once
	hook func()
}

func (r *interleavedBookings) ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID string) ([]*domain.Booking, error) {
	out, err := r.BookingRepository.ListActiveByStaffAndDate(ctx, staffID, date, excludeID)
	r.once.Do(r.hook)
	return out, err
}

func TestUseCase_CacheIgnoresSlotsComputedBeforeInvalidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &Request{StaffID: "s1", Date: monday, DurationMinutes: ptr.Ptr(60)}

	f.uc.bookingRepo = &interleavedBookings{
		BookingRepository: f.bookings,
		hook: func() {
			f.book(t, "09:00", 60)
			require.NoError(t, f.cache.InvalidateStaff(ctx, "s1"))
		},
	}

	stale, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, slotStrings(stale.Slots), "09:00", "computed from the read before the booking")

	fresh, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.NotContains(t, slotStrings(fresh.Slots), "09:00")
	assert.NotContains(t, slotStrings(fresh.Slots), "09:30")
}

func TestUseCase_MinNoticeToday(t *testing.T) {
	f := newFixture(t)
	f.clock.now = time.Date(2030, 3, 4, 10, 20, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), &Request{StaffID: "s1", Date: monday})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "11:30", resp.Slots[0].String())
}

func TestUseCase_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "missing staff id", req: &Request{Date: monday}, wantErr: ErrInvalidInput},
		{name: "missing date", req: &Request{StaffID: "s1"}, wantErr: ErrInvalidInput},
		{name: "negative duration", req: &Request{StaffID: "s1", Date: monday, DurationMinutes: ptr.Ptr(-5)}, wantErr: ErrInvalidInput},
		{name: "past date", req: &Request{StaffID: "s1", Date: monday.AddDate(0, 0, -7)}, wantErr: ErrInvalidDate},
		{name: "unknown staff", req: &Request{StaffID: "ghost", Date: monday}, wantErr: ErrStaffNotFound},
		{name: "unknown service", req: &Request{StaffID: "s1", Date: monday, ServiceIDs: []string{"perm"}}, wantErr: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_ClosedDay(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{StaffID: "s1", Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
