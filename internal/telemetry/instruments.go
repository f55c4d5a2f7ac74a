package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments are the counters recorded while a query runs.
type Instruments struct {
	streamed  metric.Int64Counter
	estimated metric.Int64Counter
	errors    metric.Int64Counter
}

func NewInstruments(meter metric.Meter) *Instruments {
	i := &Instruments{}
	var err error
	if i.streamed, err = meter.Int64Counter("k4q.records.streamed", metric.WithDescription("records emitted by the stream engine")); err != nil {
		slog.Warn("could not create counter", "name", "k4q.records.streamed", "error", err)
	}
	if i.estimated, err = meter.Int64Counter("k4q.records.estimated", metric.WithDescription("records expected by query estimates")); err != nil {
		slog.Warn("could not create counter", "name", "k4q.records.estimated", "error", err)
	}
	if i.errors, err = meter.Int64Counter("k4q.stream.errors", metric.WithDescription("queries ended by a fetch error")); err != nil {
		slog.Warn("could not create counter", "name", "k4q.stream.errors", "error", err)
	}
	return i
}

func (i *Instruments) RecordStreamed(ctx context.Context, topic string, partition int32) {
	if i == nil || i.streamed == nil {
		return
	}
	i.streamed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.Int("partition", int(partition)),
	))
}

func (i *Instruments) RecordEstimate(ctx context.Context, topic string, total uint64) {
	if i == nil || i.estimated == nil {
		return
	}
	i.estimated.Add(ctx, int64(total), metric.WithAttributes(attribute.String("topic", topic)))
}

func (i *Instruments) RecordStreamError(ctx context.Context, topic string) {
	if i == nil || i.errors == nil {
		return
	}
	i.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
}
