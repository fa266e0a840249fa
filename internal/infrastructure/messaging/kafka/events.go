package kafka

import (
	"context"
	"encoding/json"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"
)

// Header keys attached to every record event.
const (
	HeaderEventType = "event_type"
	HeaderRunID     = "run_id"
)

// EventPublisher routes record events to the featurized or failed topic.
type EventPublisher struct {
	publisher       Publisher
	topicFeaturized string
	topicFailed     string
	logger          logging.Logger
}

// Publisher is the part of Producer the event publisher needs.
type Publisher interface {
	Publish(ctx context.Context, msg *Message) error
}

func NewEventPublisher(p Publisher, topicFeaturized, topicFailed string, log logging.Logger) *EventPublisher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &EventPublisher{
		publisher:       p,
		topicFeaturized: topicFeaturized,
		topicFailed:     topicFailed,
		logger:          log.Named("record_events"),
	}
}

// TopicFor returns the topic an event with the given status goes to.
func (e *EventPublisher) TopicFor(status graph.RecordStatus) string {
	if status == graph.StatusFailed {
		return e.topicFailed
	}
	return e.topicFeaturized
}

// PublishRecordEvent encodes ev as JSON keyed by record id.
func (e *EventPublisher) PublishRecordEvent(ctx context.Context, ev *graph.RecordEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode record event")
	}
	msg := &Message{
		Topic: e.TopicFor(ev.Status),
		Key:   []byte(ev.RecordID),
		Value: value,
		Headers: map[string]string{
			HeaderEventType: ev.EventType(),
			HeaderRunID:     ev.RunID,
		},
		Timestamp: ev.OccurredAt(),
	}
	if err := e.publisher.Publish(ctx, msg); err != nil {
		e.logger.Warn("record event not published",
			logging.RecordID(ev.RecordID),
			logging.String("topic", msg.Topic),
			logging.Err(err))
		return err
	}
	return nil
}

//Personal.AI order the ending
