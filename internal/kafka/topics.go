// Package kafka adapts a sarama client to the query ports.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/IBM/sarama"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/log"
)

// MetadataClient is the part of sarama.Client used to resolve topics.
type MetadataClient interface {
	Topics() ([]string, error)
	Partitions(topic string) ([]int32, error)
	GetOffset(topic string, partitionID int32, time int64) (int64, error)
	RefreshMetadata(topics ...string) error
}

type TopicsFinder struct {
	client  MetadataClient
	timeout time.Duration
}

func NewTopicsFinder(client MetadataClient, timeout time.Duration) *TopicsFinder {
	return &TopicsFinder{client: client, timeout: timeout}
}

// FindBy resolves matched topics one at a time, staying at most one topic ahead
// of the reader.
func (f *TopicsFinder) FindBy(ctx context.Context, matcher domain.TopicsMatcher) <-chan domain.TopicResult {
	out := make(chan domain.TopicResult, 1)
	go func() {
		defer close(out)
		send := func(r domain.TopicResult) bool {
			select {
			case out <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}

		names := matcher.Names
		if !matcher.IsDirect() {
			var err error
			names, err = f.list(ctx, matcher.Pattern)
			if err != nil {
				send(domain.TopicResult{Err: err})
				return
			}
		}
		for _, name := range names {
			if ctx.Err() != nil {
				return
			}
			topic, err := f.resolve(ctx, name)
			if !send(domain.TopicResult{Topic: topic, Err: err}) {
				return
			}
		}
	}()
	return out
}

func (f *TopicsFinder) list(ctx context.Context, pattern *regexp.Regexp) ([]domain.TopicName, error) {
	all, err := withTimeout(ctx, f.timeout, func() ([]string, error) {
		if err := f.client.RefreshMetadata(); err != nil {
			return nil, err
		}
		return f.client.Topics()
	})
	if err != nil {
		return nil, &domain.BrokerError{Op: "list topics", Err: err}
	}
	sort.Strings(all)
	names := []domain.TopicName{}
	for _, name := range all {
		if pattern.MatchString(name) {
			names = append(names, domain.TopicName(name))
		}
	}
	log.FromContext(ctx).Debug("matched topics", "pattern", pattern.String(), "count", len(names))
	return names, nil
}

func (f *TopicsFinder) resolve(ctx context.Context, name domain.TopicName) (domain.Topic, error) {
	if err := name.Validate(); err != nil {
		return domain.Topic{}, err
	}
	topic, err := withTimeout(ctx, f.timeout, func() (domain.Topic, error) {
		if err := f.client.RefreshMetadata(string(name)); err != nil {
			return domain.Topic{}, err
		}
		ids, err := f.client.Partitions(string(name))
		if err != nil {
			return domain.Topic{}, err
		}
		partitions := make([]domain.Partition, 0, len(ids))
		for _, id := range ids {
			w, err := f.watermark(string(name), id)
			if err != nil {
				return domain.Topic{}, fmt.Errorf("partition %d: %w", id, err)
			}
			partitions = append(partitions, domain.Partition{ID: domain.PartitionID(id), Watermark: w})
		}
		return domain.NewTopic(name, partitions...)
	})
	switch {
	case errors.Is(err, sarama.ErrUnknownTopicOrPartition):
		return domain.Topic{}, &domain.NotFoundError{Topic: name}
	case err != nil:
		return domain.Topic{}, &domain.BrokerError{Op: "metadata", Topic: name, Err: err}
	case len(topic.Partitions) == 0:
		return domain.Topic{}, &domain.NotFoundError{Topic: name}
	}
	log.FromContext(ctx).Debug("resolved topic", "topic", name, "partitions", len(topic.Partitions), "size", topic.Size())
	return topic, nil
}

func (f *TopicsFinder) watermark(topic string, id int32) (domain.Watermark, error) {
	low, err := f.client.GetOffset(topic, id, sarama.OffsetOldest)
	if err != nil {
		return domain.Watermark{}, err
	}
	high, err := f.client.GetOffset(topic, id, sarama.OffsetNewest)
	if err != nil {
		return domain.Watermark{}, err
	}
	return domain.NewWatermark(domain.Offset(low), domain.Offset(high))
}

// withTimeout bounds a blocking sarama call. The call itself cannot be interrupted,
// so on timeout its result is dropped; the goroutine still ends because
// SaramaConfig bounds Metadata.Timeout and the Net timeouts by the same value.
func withTimeout[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{value: v, err: err}
	}()
	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
