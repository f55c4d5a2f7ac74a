package domain

import (
	"context"
	"time"
)

// TopicsFinder resolves topics lazily. The channel is closed once every matched topic
// has been sent or the context is done.
type TopicsFinder interface {
	FindBy(ctx context.Context, matcher TopicsMatcher) <-chan TopicResult
}

type QueryRangeEstimator interface {
	Estimate(ctx context.Context, topic Topic, queryRange QueryRange) (EstimatedQueryRange, error)
}

// TimestampLookup returns the timestamp of the first record at or after offset.
type TimestampLookup interface {
	TimestampAt(ctx context.Context, topic TopicName, partition PartitionID, offset Offset) (time.Time, error)
}

type RecordFinder interface {
	FindBy(ctx context.Context, estimate EstimatedQueryRange) RecordIterator
}

// RecordIterator is a finite, pull based sequence of records. It is not restartable.
type RecordIterator interface {
	Next() bool
	Record() Record
	Err() error
	Close() error
}

// PartitionCursor reads one partition forward. Next returns io.EOF once the
// partition has nothing more to give.
type PartitionCursor interface {
	Next(ctx context.Context) (Record, error)
	Close() error
}

type CursorOpener interface {
	Open(ctx context.Context, topic TopicName, partition PartitionID, start Offset, end Offset) (PartitionCursor, error)
}

type ProgressNotifier interface {
	Notify(message string)
	Start(estimatedMax Count) Progress
}

// Progress is driven by a single goroutine. Complete is idempotent.
type Progress interface {
	Increment()
	Complete()
}

type CommandRecognizer interface {
	Recognize(args []string) (Command, bool)
}
