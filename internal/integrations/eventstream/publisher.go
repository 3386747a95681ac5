package eventstream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/barbershop-booking/internal/events"
)

// Writer часть kafka.Writer, которой пользуется Publisher
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирований в Kafka.
// Ключ сообщения - id мастера, поэтому события одного мастера попадают в одну партицию.
type Publisher struct {
	writer Writer
	topic  string
	logger Logger

	mu     sync.RWMutex
	closed bool
}

// NewPublisher создает publisher поверх kafka.Writer
func NewPublisher(brokers []string, topic string, batchTimeout time.Duration, logger Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker is required", ErrInvalidConfig)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrInvalidConfig)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: batchTimeout,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { logger.Error("Kafka: "+msg, args...) }),
	}

	return NewPublisherWithWriter(writer, topic, logger), nil
}

// NewPublisherWithWriter создает publisher с произвольным writer
func NewPublisherWithWriter(writer Writer, topic string, logger Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish записывает событие в топик
func (p *Publisher) Publish(ctx context.Context, event events.BookingEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	value, err := json.Marshal(NewBookingMessage(event))
	if err != nil {
		return fmt.Errorf("%w: marshal event id=%s: %v", ErrPublish, event.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Booking.StaffID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s event id=%s: %w", ErrPublish, p.topic, event.ID, err)
	}

	return nil
}

// Handler возвращает обработчик шины событий
func (p *Publisher) Handler() events.Handler {
	return func(ctx context.Context, event events.BookingEvent) error {
		if err := p.Publish(ctx, event); err != nil {
			p.logger.Error("EventStream: failed to publish %s for booking id=%s: %v", event.Type, event.Booking.ID, err)
			return err
		}
		return nil
	}
}

// Close закрывает writer
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
