package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/store"
)

const DefaultBatchSize = 256

// Store exports records into a local store in batches, creating one store topic
// per kafka topic. Close flushes what is left and closes the store.
type Store struct {
	store     store.Store
	batchSize int
	pending   map[domain.TopicName][]domain.Record
	created   map[domain.TopicName]bool
	written   int
}

func NewStore(st store.Store, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Store{
		store:     st,
		batchSize: batchSize,
		pending:   map[domain.TopicName][]domain.Record{},
		created:   map[domain.TopicName]bool{},
	}
}

func (s *Store) Write(ctx context.Context, r domain.Record) error {
	s.pending[r.Topic] = append(s.pending[r.Topic], r)
	if len(s.pending[r.Topic]) >= s.batchSize {
		return s.flush(ctx, r.Topic)
	}
	return nil
}

func (s *Store) flush(ctx context.Context, topic domain.TopicName) error {
	records := s.pending[topic]
	if len(records) == 0 {
		return nil
	}
	if !s.created[topic] {
		if err := s.store.CreateTopic(ctx, string(topic)); err != nil && !errors.Is(err, store.ErrTopicAlreadyExists) {
			return fmt.Errorf("create store topic %s: %w", topic, err)
		}
		s.created[topic] = true
	}
	if err := s.store.AddRecords(ctx, string(topic), records...); err != nil {
		return fmt.Errorf("export %d records of %s: %w", len(records), topic, err)
	}
	s.written += len(records)
	s.pending[topic] = records[:0]
	return nil
}

// Written is the number of records already handed to the store.
func (s *Store) Written() int {
	return s.written
}

func (s *Store) Close() error {
	var result *multierror.Error
	ctx := context.Background()
	for topic := range s.pending {
		if err := s.flush(ctx, topic); err != nil {
			result = multierror.Append(result, err)
		}
	}
	slog.Debug("store export finished", "records", s.written)
	if err := s.store.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close store: %w", err))
	}
	return result.ErrorOrNil()
}
