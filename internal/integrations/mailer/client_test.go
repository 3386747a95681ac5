package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:              "b1",
		StaffID:         "s1",
		CustomerName:    "Ivan",
		CustomerEmail:   "ivan@example.com",
		BookingDate:     time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC),
		BookingTime:     types.MustTimeString("10:00"),
		DurationMinutes: 45,
		TotalPrice:      decimal.RequireFromString("35.5"),
	}
}

func TestClient_Send(t *testing.T) {
	var received Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/notifications", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second, logger.NewNop())
	err := client.Handler()(context.Background(), events.NewBookingEvent(events.BookingCreated, sampleBooking()))
	require.NoError(t, err)

	assert.Equal(t, TemplateBookingCreated, received.Template)
	assert.Equal(t, "ivan@example.com", received.To)
	assert.Equal(t, "2030-05-06", received.Date)
	assert.Equal(t, "10:00", received.Time)
	assert.Equal(t, "10:45", received.EndTime)
	assert.Equal(t, "35.50", received.TotalPrice)
}

func TestClient_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rejected", status: http.StatusBadRequest, body: `{"code":400,"message":"bad email"}`, wantErr: ErrInvalidRequest},
		{name: "gateway down", status: http.StatusBadGateway, wantErr: ErrUnavailable},
		{name: "unexpected", status: http.StatusTeapot, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "", time.Second, logger.NewNop())
			err := client.Send(context.Background(), &Notification{EventID: "e1"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNotificationFromEvent(t *testing.T) {
	b := sampleBooking()

	_, ok := NotificationFromEvent(events.NewBookingEvent(events.BookingCompleted, b))
	assert.False(t, ok, "completed bookings are not mailed")

	noEmail := *b
	noEmail.CustomerEmail = ""
	_, ok = NotificationFromEvent(events.NewBookingEvent(events.BookingCreated, &noEmail))
	assert.False(t, ok)

	prevDate := time.Date(2030, 5, 5, 0, 0, 0, 0, time.UTC)
	prevTime := types.MustTimeString("09:00")
	event := events.NewBookingEvent(events.BookingRescheduled, b)
	event.PreviousDate = &prevDate
	event.PreviousTime = &prevTime

	n, ok := NotificationFromEvent(event)
	require.True(t, ok)
	assert.Equal(t, TemplateBookingChanged, n.Template)
	assert.Equal(t, "2030-05-05", *n.PreviousDate)
	assert.Equal(t, "09:00", *n.PreviousTime)
}
