// Package events publishes outbox messages to the configured broker. Every
// broker receives the same JSON envelope around the stored payload.
package events

import (
	"context"
	"encoding/json"
	"time"

	"orderservice/internal/core/ports"

	"go.opentelemetry.io/otel/trace"
)

const envelopeVersion = 1

// Envelope wraps an order event on the wire.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope builds the envelope for msg. The correlation id is the order id;
// the trace id is taken from the span in ctx, if any.
func NewEnvelope(ctx context.Context, producer string, msg ports.OutboxMessage) Envelope {
	env := Envelope{
		EventID:       msg.ID.String(),
		EventType:     msg.EventType,
		EventVersion:  envelopeVersion,
		OccurredAt:    msg.CreatedAt.UTC(),
		Producer:      producer,
		CorrelationID: msg.AggregateID.String(),
		Payload:       json.RawMessage(msg.Payload),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		env.TraceID = sc.TraceID().String()
	}
	if len(env.Payload) == 0 {
		env.Payload = json.RawMessage("null")
	}
	return env
}

func marshalEnvelope(ctx context.Context, producer string, msg ports.OutboxMessage) ([]byte, error) {
	return json.Marshal(NewEnvelope(ctx, producer, msg))
}
