// Package events provides in-process adapters for the event publisher port.
package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"designcanvas/application/ports"
	domainevents "designcanvas/domain/events"
)

// LogPublisher writes each event to the structured log. It is the default
// delivery path when no external bus is configured.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a publisher backed by the given logger
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

// Publish logs a single event
func (p *LogPublisher) Publish(ctx context.Context, event domainevents.DomainEvent) error {
	p.logger.Info("domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Time("timestamp", event.GetTimestamp()),
	)
	return nil
}

// PublishBatch logs each event in order
func (p *LogPublisher) PublishBatch(ctx context.Context, events []domainevents.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// RecordingPublisher captures published events in memory. Tests use it to
// assert on delivery without a real bus.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domainevents.DomainEvent
}

// NewRecordingPublisher creates an empty recording publisher
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

var _ ports.EventPublisher = (*RecordingPublisher)(nil)

// Publish records a single event
func (p *RecordingPublisher) Publish(ctx context.Context, event domainevents.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

// PublishBatch records each event in order
func (p *RecordingPublisher) PublishBatch(ctx context.Context, events []domainevents.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
	return nil
}

// Events returns a copy of everything recorded so far
func (p *RecordingPublisher) Events() []domainevents.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domainevents.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}
