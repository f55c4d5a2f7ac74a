// Package query runs a query end to end: topics are resolved, estimated, streamed
// into a sink and reported to a progress notifier.
package query

import (
	"context"
	"fmt"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/log"
	"github.com/binarymatt/k4q/internal/telemetry"
)

type Sink interface {
	Write(ctx context.Context, r domain.Record) error
}

type Executor struct {
	topics      domain.TopicsFinder
	estimator   domain.QueryRangeEstimator
	records     domain.RecordFinder
	progress    domain.ProgressNotifier
	instruments *telemetry.Instruments
}

type Option func(*Executor)

func WithInstruments(i *telemetry.Instruments) Option {
	return func(e *Executor) {
		e.instruments = i
	}
}

func New(topics domain.TopicsFinder, estimator domain.QueryRangeEstimator, records domain.RecordFinder, progress domain.ProgressNotifier, opts ...Option) *Executor {
	e := &Executor{
		topics:    topics,
		estimator: estimator,
		records:   records,
		progress:  progress,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type TopicSummary struct {
	Estimate domain.EstimatedQueryRange
	Streamed domain.Count
}

type Summary struct {
	Topics []TopicSummary
	// Limited is set when the record limit stopped the query early.
	Limited bool
}

func (s Summary) Estimated() domain.Count {
	var total domain.Count
	for _, t := range s.Topics {
		total += t.Estimate.TotalCount()
	}
	return total
}

func (s Summary) Streamed() domain.Count {
	var total domain.Count
	for _, t := range s.Topics {
		total += t.Streamed
	}
	return total
}

// Query streams every matched topic into sink, one topic after the other. A limit
// of zero streams everything. The first error stops the query; the summary still
// holds the topics handled so far.
func (e *Executor) Query(ctx context.Context, matcher domain.TopicsMatcher, queryRange domain.QueryRange, sink Sink, limit int) (Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	summary := Summary{}
	for res := range e.topics.FindBy(ctx, matcher) {
		// the finder may already hold the next topic when ctx ends
		if ctx.Err() != nil {
			break
		}
		if res.Err != nil {
			return summary, res.Err
		}
		remaining := 0
		if limit > 0 {
			remaining = limit - int(summary.Streamed())
		}
		ts, err := e.queryTopic(ctx, res.Topic, queryRange, sink, remaining)
		summary.Topics = append(summary.Topics, ts)
		if err != nil {
			return summary, err
		}
		if limit > 0 && int(summary.Streamed()) >= limit {
			summary.Limited = true
			return summary, nil
		}
	}
	return summary, ctx.Err()
}

func (e *Executor) queryTopic(ctx context.Context, topic domain.Topic, queryRange domain.QueryRange, sink Sink, limit int) (TopicSummary, error) {
	ctx = log.With(ctx, "topic", topic.Name)
	logger := log.FromContext(ctx)

	est, err := e.estimator.Estimate(ctx, topic, queryRange)
	if err != nil {
		return TopicSummary{}, fmt.Errorf("estimate %s: %w", topic.Name, err)
	}
	e.instruments.RecordEstimate(ctx, topic.Name.String(), uint64(est.TotalCount()))
	logger.Info("streaming topic", "range", queryRange.String(), "expected", uint64(est.TotalCount()))

	summary := TopicSummary{Estimate: est}
	e.progress.Notify(fmt.Sprintf("streaming %s", topic.Name))
	progress := e.progress.Start(est.TotalCount())
	defer progress.Complete()

	it := e.records.FindBy(ctx, est)
	for it.Next() {
		if err := sink.Write(ctx, it.Record()); err != nil {
			if closeErr := it.Close(); closeErr != nil {
				logger.Warn("could not release partitions", "error", closeErr)
			}
			return summary, fmt.Errorf("write record: %w", err)
		}
		progress.Increment()
		summary.Streamed++
		if limit > 0 && int(summary.Streamed) >= limit {
			break
		}
	}
	closeErr := it.Close()
	if err := it.Err(); err != nil {
		return summary, fmt.Errorf("stream %s: %w", topic.Name, err)
	}
	if closeErr != nil {
		return summary, fmt.Errorf("release %s: %w", topic.Name, closeErr)
	}
	logger.Debug("topic streamed", "streamed", uint64(summary.Streamed))
	return summary, nil
}

// Count estimates every matched topic without reading any record.
func (e *Executor) Count(ctx context.Context, matcher domain.TopicsMatcher, queryRange domain.QueryRange) ([]domain.EstimatedQueryRange, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []domain.EstimatedQueryRange
	for res := range e.topics.FindBy(ctx, matcher) {
		if ctx.Err() != nil {
			break
		}
		if res.Err != nil {
			return out, res.Err
		}
		e.progress.Notify(fmt.Sprintf("estimating %s", res.Topic.Name))
		est, err := e.estimator.Estimate(ctx, res.Topic, queryRange)
		if err != nil {
			return out, fmt.Errorf("estimate %s: %w", res.Topic.Name, err)
		}
		e.instruments.RecordEstimate(ctx, res.Topic.Name.String(), uint64(est.TotalCount()))
		out = append(out, est)
	}
	return out, ctx.Err()
}

// Describe resolves every matched topic with its current watermarks.
func (e *Executor) Describe(ctx context.Context, matcher domain.TopicsMatcher) ([]domain.Topic, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []domain.Topic
	for res := range e.topics.FindBy(ctx, matcher) {
		if ctx.Err() != nil {
			break
		}
		if res.Err != nil {
			return out, res.Err
		}
		out = append(out, res.Topic)
	}
	return out, ctx.Err()
}

// FindBy streams a whole topic, estimating it first.
func (e *Executor) FindBy(ctx context.Context, name domain.TopicName) domain.RecordIterator {
	est, err := e.estimateWhole(ctx, name)
	if err != nil {
		return failed(err)
	}
	return e.records.FindBy(ctx, est)
}

func (e *Executor) estimateWhole(ctx context.Context, name domain.TopicName) (domain.EstimatedQueryRange, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res, ok := <-e.topics.FindBy(ctx, domain.Direct(name))
	if !ok {
		return domain.EstimatedQueryRange{}, &domain.NotFoundError{Topic: name}
	}
	if res.Err != nil {
		return domain.EstimatedQueryRange{}, res.Err
	}
	return e.estimator.Estimate(ctx, res.Topic, domain.WholeTopic())
}

type failedIterator struct {
	err error
}

func failed(err error) domain.RecordIterator {
	return failedIterator{err: err}
}

func (f failedIterator) Next() bool            { return false }
func (f failedIterator) Record() domain.Record { return domain.Record{} }
func (f failedIterator) Err() error            { return f.err }
func (f failedIterator) Close() error          { return nil }
