package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrBroker   = errors.New("broker error")
	ErrRange    = errors.New("invalid query range")
)

type NotFoundError struct {
	Topic     TopicName
	Partition *PartitionID
}

func (e *NotFoundError) Error() string {
	if e.Partition != nil {
		return fmt.Sprintf("partition %d of topic %s not found", *e.Partition, e.Topic)
	}
	return fmt.Sprintf("topic %s not found", e.Topic)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// BrokerError wraps a metadata or fetch failure, including timeouts.
type BrokerError struct {
	Op        string
	Topic     TopicName
	Partition PartitionID
	Err       error
}

func (e *BrokerError) Error() string {
	return fmt.Sprintf("%s %s/%d: %v", e.Op, e.Topic, e.Partition, e.Err)
}

func (e *BrokerError) Unwrap() error {
	return e.Err
}

func (e *BrokerError) Is(target error) bool {
	return target == ErrBroker
}

func (e *BrokerError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return "invalid query range: " + e.Reason
}

func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}
