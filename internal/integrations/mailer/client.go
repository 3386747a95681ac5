package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент почтового шлюза
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового шлюза
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление о бронировании
func (c *Client) Send(ctx context.Context, n *Notification) error {
	url := fmt.Sprintf("%s/api/v1/notifications", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", n.EventID)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("%w: status %d", ErrInvalidRequest, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}
}

// Handler возвращает обработчик шины событий, отправляющий письма клиентам
func (c *Client) Handler() events.Handler {
	return func(ctx context.Context, event events.BookingEvent) error {
		n, ok := NotificationFromEvent(event)
		if !ok {
			return nil
		}

		if err := c.Send(ctx, n); err != nil {
			c.log.Error("Mailer: failed to send %s for booking id=%s: %v", n.Template, n.BookingID, err)
			return err
		}

		c.log.Info("Mailer: sent %s for booking id=%s", n.Template, n.BookingID)
		return nil
	}
}

// NotificationFromEvent собирает уведомление по событию.
// ok=false, если событие не требует письма или у клиента нет email.
func NotificationFromEvent(event events.BookingEvent) (*Notification, bool) {
	template, ok := templateFor(event.Type)
	if !ok {
		return nil, false
	}

	b := event.Booking
	if b.CustomerEmail == "" {
		return nil, false
	}

	n := &Notification{
		EventID:      event.ID,
		Template:     template,
		To:           b.CustomerEmail,
		CustomerName: b.CustomerName,
		BookingID:    b.ID,
		StaffID:      b.StaffID,
		Date:         types.FormatDate(b.BookingDate),
		Time:         b.BookingTime.String(),
		TotalPrice:   b.TotalPrice.StringFixed(2),
		Reason:       b.CancellationReason,
		OccurredAt:   event.OccurredAt,
	}
	if end, err := b.EndTime(); err == nil {
		n.EndTime = end.String()
	}
	if event.PreviousDate != nil {
		d := types.FormatDate(*event.PreviousDate)
		n.PreviousDate = &d
	}
	if event.PreviousTime != nil {
		t := event.PreviousTime.String()
		n.PreviousTime = &t
	}

	return n, true
}

func templateFor(t events.EventType) (Template, bool) {
	switch t {
	case events.BookingCreated:
		return TemplateBookingCreated, true
	case events.BookingConfirmed:
		return TemplateBookingConfirmed, true
	case events.BookingRescheduled:
		return TemplateBookingChanged, true
	case events.BookingCancelled:
		return TemplateBookingCancelled, true
	case events.BookingReminder:
		return TemplateBookingReminder, true
	}
	return "", false
}
