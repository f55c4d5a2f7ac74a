package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/binarymatt/k4q/internal/domain"
)

// TimestampLookup reads the first record at or after an offset and reports its
// timestamp. Each lookup opens and closes its own partition consumer.
type TimestampLookup struct {
	consumer Consumer
	timeout  time.Duration
}

func NewTimestampLookup(consumer Consumer, timeout time.Duration) *TimestampLookup {
	return &TimestampLookup{consumer: consumer, timeout: timeout}
}

func (l *TimestampLookup) TimestampAt(ctx context.Context, topic domain.TopicName, partition domain.PartitionID, offset domain.Offset) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, &domain.BrokerError{Op: "timestamp lookup", Topic: topic, Partition: partition, Err: err}
	}
	pc, err := l.consumer.ConsumePartition(string(topic), int32(partition), int64(offset))
	if err != nil {
		return time.Time{}, consumeError("timestamp lookup", topic, partition, err)
	}
	defer pc.Close()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	select {
	case msg, ok := <-pc.Messages():
		if !ok {
			return time.Time{}, &domain.BrokerError{Op: "timestamp lookup", Topic: topic, Partition: partition, Err: fmt.Errorf("no record at offset %d", offset)}
		}
		return msg.Timestamp, nil
	case cerr := <-pc.Errors():
		var cause error = fmt.Errorf("offset %d: consumer closed", offset)
		if cerr != nil {
			cause = fmt.Errorf("offset %d: %w", offset, cerr.Err)
		}
		return time.Time{}, &domain.BrokerError{Op: "timestamp lookup", Topic: topic, Partition: partition, Err: cause}
	case <-ctx.Done():
		return time.Time{}, &domain.BrokerError{Op: "timestamp lookup", Topic: topic, Partition: partition, Err: ctx.Err()}
	}
}
