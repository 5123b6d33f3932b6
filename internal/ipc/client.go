package ipc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-term/weftctl/internal/action"
	telem "github.com/weft-term/weftctl/internal/otel"
	"github.com/weft-term/weftctl/internal/target"
)

var tracer = otel.Tracer("weftctl/ipc")

// Status classifies the result of a delivery attempt.
type Status int

const (
	// StatusDelivered means the instance accepted the datagram.
	StatusDelivered Status = iota
	// StatusFailed means the attempt failed; Outcome.Reason says why.
	StatusFailed
	// StatusUnsupported means this platform has no transport at all.
	StatusUnsupported
)

// String returns the outcome label used in diagnostics and metrics.
func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusFailed:
		return "failed"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one delivery. Reported is true when
// the transport already wrote its own diagnostic for the failure.
type Outcome struct {
	Status   Status
	Reason   error
	Reported bool
}

// Client frames command payloads and performs the single delivery
// attempt against the selected instance.
type Client struct {
	Transport Transport
	Metrics   *telem.Metrics
}

// Deliver sends payload to the selected instance and classifies the
// result. It calls the transport exactly once.
func (c *Client) Deliver(ctx context.Context, sel target.Selector, payload action.Payload) Outcome {
	ctx, span := tracer.Start(ctx, "deliver "+payload.Verb(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("command.verb", payload.Verb()),
			attribute.String("command.target", sel.String()),
		),
	)
	defer span.End()

	out := c.deliver(ctx, sel, payload)

	span.SetAttributes(attribute.String("delivery.outcome", out.Status.String()))
	if out.Reason != nil {
		span.RecordError(out.Reason)
	}
	c.Metrics.RecordDelivery(ctx, payload.Verb(), out.Status.String())

	return out
}

func (c *Client) deliver(ctx context.Context, sel target.Selector, payload action.Payload) Outcome {
	env, err := NewEnvelope(uuid.NewString(), payload)
	if err != nil {
		return Outcome{Status: StatusFailed, Reason: err}
	}

	err = c.Transport.Deliver(ctx, sel, env)
	switch {
	case err == nil:
		return Outcome{Status: StatusDelivered}
	case errors.Is(err, ErrUnsupported):
		return Outcome{Status: StatusUnsupported}
	default:
		var reported *ReportedError
		if errors.As(err, &reported) {
			return Outcome{Status: StatusFailed, Reason: err, Reported: true}
		}
		return Outcome{Status: StatusFailed, Reason: err}
	}
}
