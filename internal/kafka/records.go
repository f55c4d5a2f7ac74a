package kafka

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/IBM/sarama"

	"github.com/binarymatt/k4q/internal/domain"
)

// PartitionConsumer is the part of sarama.PartitionConsumer a cursor reads from.
type PartitionConsumer interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	HighWaterMarkOffset() int64
	Close() error
}

type Consumer interface {
	ConsumePartition(topic string, partition int32, offset int64) (PartitionConsumer, error)
}

type saramaConsumer struct {
	consumer sarama.Consumer
}

func (s saramaConsumer) ConsumePartition(topic string, partition int32, offset int64) (PartitionConsumer, error) {
	return s.consumer.ConsumePartition(topic, partition, offset)
}

func consumeError(op string, topic domain.TopicName, partition domain.PartitionID, err error) error {
	if errors.Is(err, sarama.ErrUnknownTopicOrPartition) {
		return &domain.NotFoundError{Topic: topic, Partition: &partition}
	}
	return &domain.BrokerError{Op: op, Topic: topic, Partition: partition, Err: err}
}

type CursorOpener struct {
	consumer Consumer
	idleGap  time.Duration
}

// NewCursorOpener returns an opener whose cursors give up on a partition once its
// high watermark is at or past the range end and nothing has arrived for idleGap.
// Compacted or transactional partitions can have no record at end-1.
func NewCursorOpener(consumer Consumer, idleGap time.Duration) *CursorOpener {
	return &CursorOpener{consumer: consumer, idleGap: idleGap}
}

func (o *CursorOpener) Open(ctx context.Context, topic domain.TopicName, partition domain.PartitionID, start domain.Offset, end domain.Offset) (domain.PartitionCursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pc, err := o.consumer.ConsumePartition(string(topic), int32(partition), int64(start))
	if err != nil {
		return nil, consumeError("consume", topic, partition, err)
	}
	return &cursor{
		pc:        pc,
		topic:     topic,
		partition: partition,
		end:       end,
		idleGap:   o.idleGap,
	}, nil
}

type cursor struct {
	pc        PartitionConsumer
	topic     domain.TopicName
	partition domain.PartitionID
	end       domain.Offset
	idleGap   time.Duration
	closed    bool
}

func (c *cursor) Next(ctx context.Context) (domain.Record, error) {
	idle := time.NewTimer(c.idleGap)
	defer idle.Stop()

	errs := c.pc.Errors()
	for {
		select {
		case msg, ok := <-c.pc.Messages():
			if !ok {
				return domain.Record{}, io.EOF
			}
			return toRecord(msg), nil
		case cerr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return domain.Record{}, &domain.BrokerError{Op: "fetch", Topic: c.topic, Partition: c.partition, Err: cerr.Err}
		case <-idle.C:
			if c.pc.HighWaterMarkOffset() >= int64(c.end) {
				return domain.Record{}, io.EOF
			}
			idle.Reset(c.idleGap)
		case <-ctx.Done():
			return domain.Record{}, ctx.Err()
		}
	}
}

func (c *cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.pc.Close()
}

func toRecord(msg *sarama.ConsumerMessage) domain.Record {
	var headers map[string]string
	if len(msg.Headers) > 0 {
		headers = make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			if h == nil {
				continue
			}
			headers[string(h.Key)] = string(h.Value)
		}
	}
	return domain.Record{
		Topic:     domain.TopicName(msg.Topic),
		Partition: domain.PartitionID(msg.Partition),
		Offset:    domain.Offset(msg.Offset),
		Key:       msg.Key,
		Payload:   msg.Value,
		Timestamp: msg.Timestamp,
		Headers:   headers,
	}
}
