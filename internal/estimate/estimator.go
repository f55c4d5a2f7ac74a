// Package estimate turns a logical query window into per-partition offset ranges.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/log"
	"github.com/binarymatt/k4q/internal/telemetry"
)

type Estimator struct {
	lookup domain.TimestampLookup
}

// New returns an estimator. lookup is only consulted for time based ranges and
// may be nil when only offsets are queried.
func New(lookup domain.TimestampLookup) *Estimator {
	return &Estimator{lookup: lookup}
}

func (e *Estimator) Estimate(ctx context.Context, topic domain.Topic, queryRange domain.QueryRange) (domain.EstimatedQueryRange, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "estimate")
	defer span.End()
	span.SetAttributes(
		attribute.String("topic", topic.Name.String()),
		attribute.String("range", queryRange.String()),
	)

	if err := topic.Name.Validate(); err != nil {
		return domain.EstimatedQueryRange{}, err
	}
	if err := queryRange.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.EstimatedQueryRange{}, err
	}
	if (queryRange.Start.IsTime() || queryRange.End.IsTime()) && e.lookup == nil {
		return domain.EstimatedQueryRange{}, &domain.RangeError{Reason: "time based ranges need a timestamp lookup"}
	}
	if len(topic.Partitions) == 0 {
		return domain.EstimatedQueryRange{}, &domain.NotFoundError{Topic: topic.Name}
	}

	logger := log.FromContext(ctx)
	ranges := make([]domain.PartitionRange, 0, len(topic.Partitions))
	for _, p := range topic.Partitions {
		r, err := e.partitionRange(ctx, topic.Name, p, queryRange)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return domain.EstimatedQueryRange{}, err
		}
		if r.Empty() {
			logger.Debug("partition contributes no records", "topic", topic.Name, "partition", p.ID, "start", r.Start)
		}
		ranges = append(ranges, domain.PartitionRange{Partition: p.ID, Range: r})
	}
	est := domain.NewEstimatedQueryRange(topic.Name, ranges...)
	span.SetAttributes(attribute.Int64("total", int64(est.TotalCount())))
	logger.Debug("estimated query range", "topic", topic.Name, "range", queryRange.String(), "total", est.TotalCount())
	return est, nil
}

func (e *Estimator) partitionRange(ctx context.Context, topic domain.TopicName, p domain.Partition, q domain.QueryRange) (domain.OffsetRange, error) {
	start, err := e.resolve(ctx, topic, p, q.Start, p.Watermark.Low)
	if err != nil {
		return domain.OffsetRange{}, err
	}
	end, err := e.resolve(ctx, topic, p, q.End, p.Watermark.High)
	if err != nil {
		return domain.OffsetRange{}, err
	}
	start = max(start, p.Watermark.Low)
	end = min(end, p.Watermark.High)
	if start > end {
		return domain.OffsetRange{Start: start, End: start}, nil
	}
	return domain.OffsetRange{Start: start, End: end}, nil
}

func (e *Estimator) resolve(ctx context.Context, topic domain.TopicName, p domain.Partition, pos domain.Position, open domain.Offset) (domain.Offset, error) {
	switch {
	case pos.IsOffset():
		return pos.Offset(), nil
	case pos.IsTime():
		return e.search(ctx, topic, p, pos.Time())
	default:
		return open, nil
	}
}

// search finds the first offset in [low, high) whose timestamp is not before at,
// or high when there is none. Offsets are assumed to grow with append time.
func (e *Estimator) search(ctx context.Context, topic domain.TopicName, p domain.Partition, at time.Time) (domain.Offset, error) {
	lo, hi := p.Watermark.Low, p.Watermark.High
	for lo < hi {
		mid := lo + (hi-lo)/2
		ts, err := e.lookup.TimestampAt(ctx, topic, p.ID, mid)
		if err != nil {
			var brokerErr *domain.BrokerError
			if errors.As(err, &brokerErr) {
				return 0, err
			}
			return 0, &domain.BrokerError{Op: "timestamp lookup", Topic: topic, Partition: p.ID, Err: fmt.Errorf("offset %d: %w", mid, err)}
		}
		if ts.Before(at) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	log.FromContext(ctx).Debug("resolved timestamp to offset", "topic", topic, "partition", p.ID, "time", at, "offset", lo)
	return lo, nil
}
