package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/telemetry"
)

// Every topic is a bucket nested under topicsRoot holding its metadata keys and a
// records bucket, so no topic name can reach another topic's buckets.
var (
	topicsRoot = []byte("#topics")
	recordsKey = []byte("records")
	createdKey = []byte("created")
	countKey   = []byte("record_count")
)

type boltStore struct {
	db       *bolt.DB
	timeFunc func() time.Time
}

func NewBoltStore(db *bolt.DB) Store {
	return &boltStore{
		db:       db,
		timeFunc: time.Now,
	}
}

func topicBucket(tx *bolt.Tx, name string) *bolt.Bucket {
	root := tx.Bucket(topicsRoot)
	if root == nil {
		return nil
	}
	return root.Bucket(key(name))
}

func (b *boltStore) CreateTopic(ctx context.Context, name string) error {
	_, span := telemetry.Tracer().Start(ctx, "create-topic")
	defer span.End()
	if name == "" {
		return ErrInvalidTopic
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(topicsRoot)
		if err != nil {
			return err
		}
		if root.Bucket(key(name)) != nil {
			return ErrTopicAlreadyExists
		}
		tb, err := root.CreateBucket(key(name))
		if err != nil {
			span.RecordError(err)
			return err
		}
		if _, err := tb.CreateBucket(recordsKey); err != nil {
			span.RecordError(err)
			return err
		}
		val, err := b.timeFunc().MarshalBinary()
		if err != nil {
			return err
		}
		return tb.Put(createdKey, val)
	})
}

// AddRecords writes the count and every record through bolt's batch, which
// coalesces concurrent writers into few transactions.
func (b *boltStore) AddRecords(ctx context.Context, topic string, records ...domain.Record) error {
	ctx, span := telemetry.Tracer().Start(ctx, "add-records")
	defer span.End()
	span.SetAttributes(attribute.String("topic", topic), attribute.Int("count", len(records)))

	g, _ := errgroup.WithContext(ctx)
	for _, record := range records {
		r := record
		g.Go(func() error {
			data, err := encode(r)
			if err != nil {
				return err
			}
			return b.db.Batch(func(tx *bolt.Tx) error {
				tb := topicBucket(tx, topic)
				if tb == nil {
					slog.ErrorContext(ctx, "trying to add record to non-existing topic", "topic", topic)
					return ErrInvalidTopic
				}
				bu := tb.Bucket(recordsKey)
				if bu == nil {
					return ErrMissingBucket
				}
				k := key(RecordID(r.Partition, r.Offset))
				if bu.Get(k) == nil {
					if err := tb.Put(countKey, itob(btoi(tb.Get(countKey))+1)); err != nil {
						return err
					}
				}
				return bu.Put(k, data)
			})
		})
	}
	return g.Wait()
}

func (b *boltStore) GetRecords(ctx context.Context, topic string, start string, limit int) ([]domain.Record, error) {
	_, span := telemetry.Tracer().Start(ctx, "get-records")
	defer span.End()

	var records []domain.Record
	err := b.db.View(func(tx *bolt.Tx) error {
		tb := topicBucket(tx, topic)
		if tb == nil {
			return ErrInvalidTopic
		}
		bucket := tb.Bucket(recordsKey)
		if bucket == nil {
			return ErrMissingBucket
		}
		c := bucket.Cursor()
		for k, v := c.Seek(key(start)); k != nil; k, v = c.Next() {
			if len(records) >= limit {
				break
			}
			if start != "" && string(k) == start {
				continue
			}
			record, err := decode(v)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	slog.DebugContext(ctx, "returning records from bolt", "count", len(records))
	return records, nil
}

func (b *boltStore) ListTopics(ctx context.Context) ([]string, error) {
	_, span := telemetry.Tracer().Start(ctx, "list-topics")
	defer span.End()
	var topics []string
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(topicsRoot)
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, _ []byte) error {
			topics = append(topics, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (b *boltStore) Stats() map[string]TopicMetadata {
	s := map[string]TopicMetadata{}
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(topicsRoot)
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, _ []byte) error {
			tb := root.Bucket(k)
			if tb == nil {
				return nil
			}
			meta := TopicMetadata{Name: string(k), RecordCount: btoi(tb.Get(countKey))}
			if err := meta.CreatedAt.UnmarshalBinary(tb.Get(createdKey)); err != nil {
				return fmt.Errorf("topic %s: %w", k, err)
			}
			s[meta.Name] = meta
			return nil
		})
	})
	if err != nil {
		slog.Error("could not get store stats", "error", err)
	}
	return s
}

func (b *boltStore) Close() error {
	return b.db.Close()
}

func itob(v int64) []byte {
	return key(strconv.FormatInt(v, 10))
}

func btoi(raw []byte) int64 {
	if len(raw) == 0 {
		return 0
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		slog.Warn("unreadable record count", "value", string(raw), "error", err)
		return 0
	}
	return v
}
