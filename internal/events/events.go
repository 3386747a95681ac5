// Package events внутрипроцессная шина событий бронирований.
// Ледджер публикует события после коммита, подписчики (уведомления, кэш слотов, Kafka)
// обрабатывают их синхронно. Ошибки подписчиков логируются и не возвращаются публикатору.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// EventType тип события бронирования
type EventType string

const (
	BookingCreated     EventType = "booking.created"
	BookingConfirmed   EventType = "booking.confirmed"
	BookingRescheduled EventType = "booking.rescheduled"
	BookingCancelled   EventType = "booking.cancelled"
	BookingCompleted   EventType = "booking.completed"
	BookingReminder    EventType = "booking.reminder"
)

// BookingEvent событие об изменении бронирования
type BookingEvent struct {
	ID         string
	Type       EventType
	Booking    domain.Booking
	OccurredAt time.Time

	// Заполняются только для BookingRescheduled
	PreviousDate *time.Time
	PreviousTime *types.TimeString
}

// NewBookingEvent создает событие со снимком бронирования
func NewBookingEvent(eventType EventType, b *domain.Booking) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Booking:    *b,
		OccurredAt: time.Now().UTC(),
	}
}

// Handler обработчик события
type Handler func(ctx context.Context, event BookingEvent) error

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type subscription struct {
	name    string
	handler Handler
}

// Bus синхронная шина событий
type Bus struct {
	mu     sync.RWMutex
	byType map[EventType][]subscription
	all    []subscription
	logger Logger
}

// NewBus создает пустую шину
func NewBus(logger Logger) *Bus {
	return &Bus{
		byType: make(map[EventType][]subscription),
		logger: logger,
	}
}

// Subscribe подписывает обработчик на события указанных типов
func (b *Bus) Subscribe(name string, handler Handler, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range eventTypes {
		b.byType[t] = append(b.byType[t], subscription{name: name, handler: handler})
	}
}

// SubscribeAll подписывает обработчик на все события
func (b *Bus) SubscribeAll(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.all = append(b.all, subscription{name: name, handler: handler})
}

// Publish доставляет событие всем подписчикам по порядку подписки
func (b *Bus) Publish(ctx context.Context, event BookingEvent) {
	b.mu.RLock()
	subs := make([]subscription, 0, len(b.all)+len(b.byType[event.Type]))
	subs = append(subs, b.all...)
	subs = append(subs, b.byType[event.Type]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(ctx, sub, event)
	}
}

func (b *Bus) deliver(ctx context.Context, sub subscription, event BookingEvent) {
	defer func() {
		if p := recover(); p != nil {
			b.logger.Error("Publish: subscriber %s panicked on %s event=%s: %v", sub.name, event.Type, event.ID, p)
		}
	}()

	if err := sub.handler(ctx, event); err != nil {
		b.logger.Warn("Publish: subscriber %s failed on %s booking=%s: %v", sub.name, event.Type, event.Booking.ID, err)
	}
}
