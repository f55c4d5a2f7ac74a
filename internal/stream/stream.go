// Package stream merges bounded per-partition cursors into a single record iterator.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/log"
	"github.com/binarymatt/k4q/internal/telemetry"
)

const DefaultBuffer = 64

type Option func(*Engine)

// WithBuffer sets how many records each partition may hold before its fetch blocks.
func WithBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.buffer = n
		}
	}
}

func WithInstruments(i *telemetry.Instruments) Option {
	return func(e *Engine) {
		e.instruments = i
	}
}

type Engine struct {
	opener      domain.CursorOpener
	buffer      int
	instruments *telemetry.Instruments
}

func New(opener domain.CursorOpener, opts ...Option) *Engine {
	e := &Engine{opener: opener, buffer: DefaultBuffer}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindBy starts one fetch per non-empty partition of the estimate. The caller must
// drain the iterator or Close it.
func (e *Engine) FindBy(ctx context.Context, est domain.EstimatedQueryRange) domain.RecordIterator {
	ctx, span := telemetry.Tracer().Start(ctx, "stream")
	span.SetAttributes(
		attribute.String("topic", est.Topic().String()),
		attribute.Int64("estimated", int64(est.TotalCount())),
	)

	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	it := &Iterator{
		ctx:         gctx,
		cancel:      cancel,
		group:       group,
		span:        span,
		topic:       est.Topic(),
		instruments: e.instruments,
	}
	for _, pr := range est.Ranges() {
		if pr.Range.Empty() {
			continue
		}
		pr := pr
		records := make(chan domain.Record, e.buffer)
		it.lanes = append(it.lanes, lane{partition: pr.Partition, records: records})
		group.Go(func() error {
			defer close(records)
			return it.fill(gctx, e.opener, pr, records)
		})
	}
	it.live = len(it.lanes)
	return it
}

type lane struct {
	partition domain.PartitionID
	records   chan domain.Record
}

// Iterator is driven by a single goroutine.
type Iterator struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	span   trace.Span
	topic  domain.TopicName

	lanes   []lane
	live    int
	next    int
	current domain.Record
	done    bool
	err     error

	mu        sync.Mutex
	closeErrs *multierror.Error

	instruments *telemetry.Instruments
}

func (it *Iterator) fill(ctx context.Context, opener domain.CursorOpener, pr domain.PartitionRange, out chan<- domain.Record) error {
	logger := log.FromContext(ctx).With("topic", it.topic, "partition", pr.Partition)
	cursor, err := opener.Open(ctx, it.topic, pr.Partition, pr.Range.Start, pr.Range.End)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("open partition %d: %w", pr.Partition, err)
	}
	defer func() {
		if err := cursor.Close(); err != nil {
			it.mu.Lock()
			it.closeErrs = multierror.Append(it.closeErrs, fmt.Errorf("close partition %d: %w", pr.Partition, err))
			it.mu.Unlock()
		}
	}()

	for {
		record, err := cursor.Next(ctx)
		if errors.Is(err, io.EOF) {
			logger.Debug("partition cursor exhausted")
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch partition %d: %w", pr.Partition, err)
		}
		if record.Offset < pr.Range.Start {
			continue
		}
		if record.Offset >= pr.Range.End {
			return nil
		}
		select {
		case out <- record:
		case <-ctx.Done():
			return nil
		}
		if record.Offset >= pr.Range.End-1 {
			logger.Debug("partition range complete", "end", pr.Range.End)
			return nil
		}
	}
}

// Next advances to the next record. Lanes are polled round-robin starting after
// the one that produced the previous record.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	for it.live > 0 && it.ctx.Err() == nil {
		if idx, ok := it.poll(); ok {
			return it.emit(idx)
		}
		if it.live == 0 {
			break
		}
		if idx, ok := it.wait(); ok {
			return it.emit(idx)
		}
	}
	it.finish()
	return false
}

func (it *Iterator) emit(idx int) bool {
	it.next = (idx + 1) % len(it.lanes)
	it.instruments.RecordStreamed(it.ctx, it.topic.String(), int32(it.lanes[idx].partition))
	return true
}

// poll takes the first record already buffered, without blocking.
func (it *Iterator) poll() (int, bool) {
	for i := 0; i < len(it.lanes); i++ {
		idx := (it.next + i) % len(it.lanes)
		records := it.lanes[idx].records
		if records == nil {
			continue
		}
		select {
		case record, ok := <-records:
			if !ok {
				it.drop(idx)
				continue
			}
			it.current = record
			return idx, true
		default:
		}
	}
	return 0, false
}

// wait blocks until any lane has a record, a lane closes or the context ends.
func (it *Iterator) wait() (int, bool) {
	cases := make([]reflect.SelectCase, len(it.lanes)+1)
	cases[0] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(it.ctx.Done())}
	for i, l := range it.lanes {
		cases[i+1] = reflect.SelectCase{Dir: reflect.SelectRecv}
		if l.records != nil {
			cases[i+1].Chan = reflect.ValueOf(l.records)
		}
	}
	chosen, value, ok := reflect.Select(cases)
	if chosen == 0 {
		return 0, false
	}
	idx := chosen - 1
	if !ok {
		it.drop(idx)
		return 0, false
	}
	it.current = value.Interface().(domain.Record)
	return idx, true
}

func (it *Iterator) drop(idx int) {
	it.lanes[idx].records = nil
	it.live--
}

func (it *Iterator) finish() {
	if it.done {
		return
	}
	it.done = true
	it.cancel()
	if err := it.group.Wait(); err != nil {
		it.err = err
		it.instruments.RecordStreamError(it.ctx, it.topic.String())
		it.span.RecordError(err)
		it.span.SetStatus(codes.Error, err.Error())
	}
	it.span.End()
}

func (it *Iterator) Record() domain.Record {
	return it.current
}

// Err reports the fetch failure that ended the stream. Cancellation is not an error.
func (it *Iterator) Err() error {
	return it.err
}

// Close stops every lane and waits for its cursor to be released. It returns the
// aggregated cursor close failures and may be called more than once.
func (it *Iterator) Close() error {
	it.finish()
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.closeErrs.ErrorOrNil()
}
