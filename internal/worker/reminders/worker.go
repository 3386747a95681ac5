// Package reminders ежедневная рассылка напоминаний о завтрашних бронированиях.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/events"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// DefaultSchedule каждый день в 18:00 по времени салона
const DefaultSchedule = "0 18 * * *"

const runTimeout = 5 * time.Minute

// ErrInvalidSchedule возвращается при некорректном cron-выражении
var ErrInvalidSchedule = errors.New("reminders: invalid schedule")

// Worker планировщик напоминаний
type Worker struct {
	cron         *cron.Cron
	lister       BookingLister
	publisher    EventPublisher
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewWorker создает планировщик. Пустое расписание заменяется DefaultSchedule.
func NewWorker(schedule string, lister BookingLister, publisher EventPublisher, location *time.Location, logger Logger) (*Worker, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if location == nil {
		location = time.UTC
	}

	w := &Worker{
		cron:         cron.New(cron.WithLocation(location)),
		lister:       lister,
		publisher:    publisher,
		location:     location,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}

	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}
	return w, nil
}

// Start запускает планировщик в фоне
func (w *Worker) Start() {
	w.cron.Start()
	w.logger.Info("Reminders: scheduler started")
}

// Stop останавливает планировщик и ждет завершения текущей рассылки
func (w *Worker) Stop(ctx context.Context) error {
	done := w.cron.Stop().Done()
	select {
	case <-done:
		w.logger.Info("Reminders: scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendReminders публикует напоминания о подтвержденных и перенесенных бронированиях на завтра.
// Возвращает количество опубликованных напоминаний.
func (w *Worker) SendReminders(ctx context.Context) (int, error) {
	tomorrow := types.NormalizeDate(w.timeProvider.Now().In(w.location)).AddDate(0, 0, 1)

	bookings, err := w.lister.List(ctx, domain.BookingsFilter{
		StartDate: &tomorrow,
		EndDate:   &tomorrow,
		Statuses:  []domain.BookingStatus{domain.StatusConfirmed, domain.StatusRescheduled},
	})
	if err != nil {
		return 0, fmt.Errorf("SendReminders - list bookings for %s: %w", types.FormatDate(tomorrow), err)
	}

	for _, b := range bookings {
		w.publisher.Publish(ctx, events.NewBookingEvent(events.BookingReminder, b))
	}

	w.logger.Info("Reminders: %d reminders for %s published", len(bookings), types.FormatDate(tomorrow))
	return len(bookings), nil
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := w.SendReminders(ctx); err != nil {
		w.logger.Error("Reminders: %v", err)
	}
}
