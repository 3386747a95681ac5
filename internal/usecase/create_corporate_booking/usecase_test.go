package create_corporate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/availability"
	"github.com/m04kA/barbershop-booking/internal/domain"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	breakRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/breaks"
	catalogRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/catalog"
	corporateRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/corporate"
	settingsRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/staff"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/storagetest"
	"github.com/m04kA/barbershop-booking/internal/service/bookings"
	settingsService "github.com/m04kA/barbershop-booking/internal/service/settings"
	settingsModels "github.com/m04kA/barbershop-booking/internal/service/settings/models"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var monday = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc        *UseCase
	settings  *settingsService.Service
	corporate *corporateRepo.Repository
	bookings  *bookingRepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewDB(t)
	storagetest.InsertStaff(t, db, "s1")
	storagetest.InsertService(t, db, "cut", 30, "25.00")
	storagetest.InsertService(t, db, "beard", 15, "10.00")

	log := logger.NewNop()
	var recorder *metrics.Metrics
	txManager := txmanager.NewTransactionManager(db)

	f := &fixture{
		settings:  settingsService.NewService(settingsRepo.NewRepository(db, storagetest.Dialect), log),
		corporate: corporateRepo.NewRepository(db, storagetest.Dialect),
		bookings:  bookingRepo.NewRepository(db, storagetest.Dialect),
	}
	ledger := bookings.NewService(f.bookings, txManager, nil, recorder, log)

	f.uc = NewUseCase(
		staffRepo.NewRepository(db, storagetest.Dialect),
		catalogRepo.NewRepository(db, storagetest.Dialect),
		f.bookings,
		breakRepo.NewRepository(db, storagetest.Dialect),
		f.corporate,
		f.settings,
		ledger,
		txManager,
		availability.NewCalculator(domain.DefaultSlotGranularityMinutes),
		time.UTC,
		log,
	)
	f.uc.timeProvider = &fixedTime{now: time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

func validRequest(start string) *Request {
	return &Request{
		StaffID:           "s1",
		CompanyName:       "Acme",
		ContactPerson:     "Lars",
		CompanyEmail:      "office@acme.example",
		CompanyPhone:      "+4587654321",
		CompanyAddress:    "Harbour st. 5",
		CompanyCity:       "Aarhus",
		CompanyPostalCode: "8000",
		Employees: []EmployeeRequest{
			{EmployeeName: "Mads", ServiceIDs: []string{"cut", "beard"}},
			{EmployeeName: "Emil", ServiceIDs: []string{"cut"}, Notes: ptr.Ptr("short")},
		},
		Date:      monday,
		StartTime: types.MustTimeString(start),
	}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, validRequest("10:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.KindCorporate, b.Kind)
	assert.Equal(t, 75, b.DurationMinutes)
	assert.Equal(t, []string{"cut", "beard", "cut"}, b.ServiceIDs)
	assert.Equal(t, domain.PaymentInvoice, b.PaymentMethod)
	assert.True(t, b.IsHomeService)
	assert.Equal(t, "Harbour st. 5, 8000 Aarhus", ptr.Value(b.ServiceAddress))
	assert.True(t, decimal.RequireFromString("60").Equal(resp.Details.ServicesPrice))
	assert.True(t, decimal.RequireFromString("150").Equal(b.TravelFee))
	assert.True(t, decimal.RequireFromString("210").Equal(b.TotalPrice))

	stored, err := f.corporate.GetByBookingID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.CompanyName)
	require.Len(t, stored.Employees, 2)
	assert.Equal(t, "Emil", stored.Employees[1].EmployeeName)
}

func TestUseCase_NoTravelFeeWhenHomeServiceDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settings.Update(ctx, &settingsModels.UpdateSettingsRequest{HomeServiceEnabled: ptr.Ptr(false)})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, validRequest("10:00"))
	require.NoError(t, err)
	assert.True(t, resp.Booking.TravelFee.IsZero())
	assert.True(t, decimal.RequireFromString("60").Equal(resp.Booking.TotalPrice))
}

func TestUseCase_BlockMustFit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest("10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, validRequest("11:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable, "overlaps the first block")

	_, err = f.uc.Execute(ctx, validRequest("17:00"))
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable, "75 minutes do not fit before 18:00")

	active, err := f.bookings.ListActiveByStaffAndDate(ctx, "s1", monday, "")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestUseCase_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no employees", mutate: func(r *Request) { r.Employees = nil }, wantErr: ErrInvalidInput},
		{name: "employee without services", mutate: func(r *Request) { r.Employees[0].ServiceIDs = nil }, wantErr: ErrInvalidInput},
		{name: "employee without name", mutate: func(r *Request) { r.Employees[1].EmployeeName = "" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.CompanyEmail = "acme" }, wantErr: ErrInvalidInput},
		{name: "no address", mutate: func(r *Request) { r.CompanyAddress = "" }, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, -7) }, wantErr: ErrInvalidDate},
		{name: "unknown staff", mutate: func(r *Request) { r.StaffID = "ghost" }, wantErr: ErrStaffNotFound},
		{name: "unknown service", mutate: func(r *Request) { r.Employees[1].ServiceIDs = []string{"perm"} }, wantErr: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("10:00")
			tt.mutate(req)
			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
