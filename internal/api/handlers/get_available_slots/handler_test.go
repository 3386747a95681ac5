package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/barbershop-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func serve(uc *useCaseMock, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/staff/{staffId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool {
		return r.StaffID == "s1" && len(r.ServiceIDs) == 2 && r.ServiceIDs[1] == "beard" && r.DurationMinutes == nil
	})).Return(&getAvailableSlots.Response{
		StaffID:         "s1",
		Date:            types.NormalizeDate(mustDate(t, "2030-03-04")),
		DurationMinutes: 45,
		Slots:           []types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("09:30")},
	}, nil)

	rec := serve(uc, "/staff/s1/available-slots?date=2030-03-04&serviceIds=cut,beard")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Slots)
	assert.Equal(t, "2030-03-04", resp.Date)
}

func TestHandler_BadQuery(t *testing.T) {
	uc := &useCaseMock{}

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/staff/s1/available-slots").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/staff/s1/available-slots?date=04.03.2030").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/staff/s1/available-slots?date=2030-03-04&duration=long").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_StaffNotFound(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableSlots.ErrStaffNotFound)

	assert.Equal(t, http.StatusNotFound, serve(uc, "/staff/ghost/available-slots?date=2030-03-04").Code)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}
