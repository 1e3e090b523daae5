// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"rental-booking/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const TypeBookingCreated = "booking.created"

var ErrPublisherClosed = errors.New("publisher closed")

type Publisher interface {
	// Publish sends payload as JSON under key. Messages sharing a key keep
	// their relative order.
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// BookingCreated is emitted once a booking has been committed.
type BookingCreated struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	ListingID  string    `json:"listingId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice int64     `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// New returns a Kafka publisher when brokers are configured and a no-op
// publisher otherwise.
func New(cfg utils.KafkaConfig, log *zap.Logger) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		log.Info("Kafka brokers not configured, booking events disabled")
		return Noop{}, nil
	}
	if cfg.BookingTopic == "" {
		return nil, fmt.Errorf("kafka topic cannot be empty")
	}
	return NewKafkaPublisher(cfg.Brokers, cfg.BookingTopic, log), nil
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

func (Noop) Close() error { return nil }

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	log = log.With(zap.String("publisher", "kafka"), zap.String("topic", topic))

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, msg := range messages {
				log.Error("Failed to deliver event",
					zap.Error(err),
					zap.String("key", string(msg.Key)),
				)
			}
		},
		Logger:      kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(log.Sugar().Errorf),
	}

	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload any) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// Async writer: delivery errors surface in the Completion callback.
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
