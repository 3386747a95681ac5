package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/bookings"
	"github.com/m04kA/barbershop-booking/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Cancel(ctx context.Context, id string, reason *string) (*domain.Booking, error) {
	args := m.Called(ctx, id, reason)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func serve(svc *serviceMock, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/b1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Cancel(t *testing.T) {
	svc := &serviceMock{}
	svc.On("Cancel", mock.Anything, "b1", mock.MatchedBy(func(reason *string) bool {
		return reason != nil && *reason == "sick"
	})).Return(&domain.Booking{ID: "b1", Status: domain.StatusCancelled}, nil)

	rec := serve(svc, `{"cancellationReason":"sick"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandler_WithoutBody(t *testing.T) {
	svc := &serviceMock{}
	svc.On("Cancel", mock.Anything, "b1", (*string)(nil)).Return(&domain.Booking{ID: "b1", Status: domain.StatusCancelled}, nil)

	assert.Equal(t, http.StatusOK, serve(svc, "").Code)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{err: bookings.ErrInvalidState, want: http.StatusConflict},
		{err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &serviceMock{}
		svc.On("Cancel", mock.Anything, "b1", mock.Anything).Return(nil, tt.err)
		assert.Equal(t, tt.want, serve(svc, "").Code, tt.err.Error())
	}
}
