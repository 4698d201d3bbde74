package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// Event types published on the visit-alert topic.
const (
	EventVisitScheduled = "visit.scheduled"
	EventVisitCompleted = "visit.completed"
	EventVisitCancelled = "visit.cancelled"
)

// VisitAlertEvent is the payload published when a visit disposition changes.
// Consumers (notification workers, audit log) key off EventType.
type VisitAlertEvent struct {
	EventID       string             `json:"event_id"`
	EventType     string             `json:"event_type"`
	VisitID       uint               `json:"visit_id"`
	VisitorName   string             `json:"visitor_name"`
	StudentID     *uint              `json:"student_id,omitempty"`
	ActionTaken   models.VisitAction `json:"action_taken"`
	ScheduledTime *string            `json:"scheduled_time,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

// EventPublisher publishes visit alert events.
type EventPublisher interface {
	PublishVisitAlert(ctx context.Context, event VisitAlertEvent) error
	Close() error
}

// KafkaEventPublisher publishes events to Kafka through watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafkaEventPublisher builds a watermill Kafka publisher for the given
// brokers (comma-free slice) and topic.
func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

func (p *KafkaEventPublisher) PublishVisitAlert(ctx context.Context, event VisitAlertEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal visit alert event: %w", err)
	}

	msg := message.NewMessage(event.EventID, payload)
	msg.Metadata.Set("event_type", event.EventType)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish visit alert event: %w", err)
	}

	p.logger.Info("Published visit alert event",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"visit_id", event.VisitID)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher records published events in memory. Used in tests and
// as the fallback when no brokers are configured.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []VisitAlertEvent
	logger *slog.Logger

	// FailNext forces the next publish to fail; lets tests exercise the
	// alert_sent-stays-false path.
	FailNext bool
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) PublishVisitAlert(ctx context.Context, event VisitAlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailNext {
		p.FailNext = false
		return fmt.Errorf("publish failed")
	}

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	p.events = append(p.events, event)
	p.logger.Info("Mock publish", "event_type", event.EventType, "visit_id", event.VisitID)
	return nil
}

func (p *MockEventPublisher) Close() error {
	return nil
}

// Published returns a copy of the recorded events.
func (p *MockEventPublisher) Published() []VisitAlertEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]VisitAlertEvent, len(p.events))
	copy(out, p.events)
	return out
}
