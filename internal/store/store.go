// Package store keeps exported query results in a local badger or bolt database so
// they can be inspected after the query finished.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	badger "github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/log"
)

var (
	ErrInvalidTopic       = errors.New("invalid topic")
	ErrTopicAlreadyExists = errors.New("topic already exists")
	ErrMissingBucket      = errors.New("missing topics bucket")
	ErrInvalidSpec        = errors.New("store must be badger:DIR or bolt:FILE")
	ErrInvalidID          = errors.New("invalid record id")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Store interface {
	CreateTopic(ctx context.Context, name string) error
	AddRecords(ctx context.Context, topic string, records ...domain.Record) error
	// GetRecords returns up to limit records stored after the start id. An empty
	// start reads from the beginning.
	GetRecords(ctx context.Context, topic string, start string, limit int) ([]domain.Record, error)
	ListTopics(ctx context.Context) ([]string, error)
	Stats() map[string]TopicMetadata
	Close() error
}

type TopicMetadata struct {
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	RecordCount int64     `json:"record_count"`
}

// RecordID orders stored records by partition, then offset.
func RecordID(partition domain.PartitionID, offset domain.Offset) string {
	return fmt.Sprintf("%05d-%019d", partition, offset)
}

func ParseRecordID(id string) (domain.PartitionID, domain.Offset, error) {
	p, o, ok := strings.Cut(id, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	partition, err := strconv.ParseInt(p, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	offset, err := strconv.ParseInt(o, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return domain.PartitionID(partition), domain.Offset(offset), nil
}

type storedRecord struct {
	Topic     string            `json:"topic"`
	Partition int32             `json:"partition"`
	Offset    int64             `json:"offset"`
	Key       []byte            `json:"key,omitempty"`
	Payload   []byte            `json:"payload,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Headers   map[string]string `json:"headers,omitempty"`
}

func encode(r domain.Record) ([]byte, error) {
	return json.Marshal(storedRecord{
		Topic:     string(r.Topic),
		Partition: int32(r.Partition),
		Offset:    int64(r.Offset),
		Key:       r.Key,
		Payload:   r.Payload,
		Timestamp: r.Timestamp,
		Headers:   r.Headers,
	})
}

func decode(data []byte) (domain.Record, error) {
	var s storedRecord
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Record{}, err
	}
	return domain.Record{
		Topic:     domain.TopicName(s.Topic),
		Partition: domain.PartitionID(s.Partition),
		Offset:    domain.Offset(s.Offset),
		Key:       s.Key,
		Payload:   s.Payload,
		Timestamp: s.Timestamp,
		Headers:   s.Headers,
	}, nil
}

func key(key string) []byte {
	return []byte(key)
}

// Open opens the store named by spec, creating it when missing.
func Open(ctx context.Context, spec string) (Store, error) {
	kind, path, ok := strings.Cut(spec, ":")
	if !ok || path == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	logger := log.FromContext(ctx)
	switch kind {
	case "badger":
		if err := initializeDataDir(path); err != nil {
			return nil, err
		}
		logger.Debug("opening badger store", "path", path)
		db, err := badger.Open(badger.DefaultOptions(path).WithLogger(log.Badger()).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return nil, err
		}
		return NewBadger(db), nil
	case "bolt":
		if err := initializeDataDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
		logger.Debug("opening bolt store", "path", path)
		db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, err
		}
		return NewBoltStore(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
}

func initializeDataDir(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			slog.Error("error ensuring directory", "error", err, "path", path)
			return err
		}
	}
	return nil
}
