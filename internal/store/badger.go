package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/telemetry"
)

// topic metadata lives under a prefix no kafka topic name can start with
const metaPrefix = "#topics#"

type badgerStore struct {
	db       *badger.DB
	timeFunc func() time.Time
}

func NewBadger(db *badger.DB) *badgerStore {
	return &badgerStore{
		db:       db,
		timeFunc: time.Now,
	}
}

func metaKey(topic string) []byte {
	return key(metaPrefix + topic)
}

func recordKey(topic string, r domain.Record) []byte {
	return key(fmt.Sprintf("%s#%s", topic, RecordID(r.Partition, r.Offset)))
}

func loadMeta(item *badger.Item) (TopicMetadata, error) {
	var meta TopicMetadata
	data, err := item.ValueCopy(nil)
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

func (b *badgerStore) retrieveTopicMeta(tx *badger.Txn, topic string) (TopicMetadata, error) {
	item, err := tx.Get(metaKey(topic))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return TopicMetadata{}, ErrInvalidTopic
	}
	if err != nil {
		return TopicMetadata{}, err
	}
	return loadMeta(item)
}

func (b *badgerStore) CreateTopic(ctx context.Context, name string) error {
	return b.db.Update(func(tx *badger.Txn) error {
		_, err := tx.Get(metaKey(name))
		if err == nil {
			return ErrTopicAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		data, err := json.Marshal(TopicMetadata{Name: name, CreatedAt: b.timeFunc()})
		if err != nil {
			return err
		}
		slog.DebugContext(ctx, "creating topic in badger", "topic", name)
		return tx.Set(metaKey(name), data)
	})
}

func (b *badgerStore) AddRecords(ctx context.Context, topic string, records ...domain.Record) error {
	_, span := telemetry.Tracer().Start(ctx, "add-records")
	defer span.End()
	span.SetAttributes(attribute.String("topic", topic), attribute.Int("count", len(records)))

	return b.db.Update(func(tx *badger.Txn) error {
		meta, err := b.retrieveTopicMeta(tx, topic)
		if err != nil {
			return err
		}
		for _, record := range records {
			k := recordKey(topic, record)
			if _, err := tx.Get(k); errors.Is(err, badger.ErrKeyNotFound) {
				meta.RecordCount++
			}
			data, err := encode(record)
			if err != nil {
				return err
			}
			if err := tx.Set(k, data); err != nil {
				return err
			}
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Set(metaKey(topic), data)
	})
}

func (b *badgerStore) GetRecords(ctx context.Context, topic string, start string, limit int) (records []domain.Record, err error) {
	err = b.db.View(func(tx *badger.Txn) error {
		if _, err := b.retrieveTopicMeta(tx, topic); err != nil {
			return err
		}
		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := key(topic + "#")
		startKey := key(topic + "#" + start)

		for it.Seek(startKey); it.ValidForPrefix(prefix); it.Next() {
			if len(records) >= limit {
				break
			}
			item := it.Item()
			if start != "" && string(item.Key()) == string(startKey) {
				continue
			}
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			record, err := decode(data)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	slog.DebugContext(ctx, "returning records from badger", "count", len(records))
	return
}

func (b *badgerStore) ListTopics(ctx context.Context) (topics []string, err error) {
	err = b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()
		prefix := key(metaPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			topics = append(topics, strings.TrimPrefix(string(it.Item().Key()), metaPrefix))
		}
		return nil
	})
	return
}

func (b *badgerStore) Stats() map[string]TopicMetadata {
	results := map[string]TopicMetadata{}
	err := b.db.View(func(tx *badger.Txn) error {
		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := key(metaPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			meta, err := loadMeta(it.Item())
			if err != nil {
				return err
			}
			results[meta.Name] = meta
		}
		return nil
	})
	if err != nil {
		slog.Error("could not get store stats", "error", err)
	}
	return results
}

func (b *badgerStore) Close() error {
	return b.db.Close()
}
