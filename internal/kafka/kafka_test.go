package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/suite"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/domain"
)

type fakeClient struct {
	topics     map[string][]domain.Watermark
	refreshErr error
	delay      time.Duration
}

func (f *fakeClient) Topics() ([]string, error) {
	names := make([]string, 0, len(f.topics))
	for name := range f.topics {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeClient) Partitions(topic string) ([]int32, error) {
	time.Sleep(f.delay)
	marks, ok := f.topics[topic]
	if !ok {
		return nil, sarama.ErrUnknownTopicOrPartition
	}
	ids := make([]int32, len(marks))
	for i := range marks {
		ids[i] = int32(len(marks) - 1 - i)
	}
	return ids, nil
}

func (f *fakeClient) GetOffset(topic string, partitionID int32, t int64) (int64, error) {
	w := f.topics[topic][partitionID]
	if t == sarama.OffsetOldest {
		return int64(w.Low), nil
	}
	return int64(w.High), nil
}

func (f *fakeClient) RefreshMetadata(topics ...string) error {
	return f.refreshErr
}

type fakePartitionConsumer struct {
	messages chan *sarama.ConsumerMessage
	errors   chan *sarama.ConsumerError
	hwm      int64
	closes   int
	mu       sync.Mutex
}

func newFakePartitionConsumer(hwm int64, msgs ...*sarama.ConsumerMessage) *fakePartitionConsumer {
	pc := &fakePartitionConsumer{
		messages: make(chan *sarama.ConsumerMessage, len(msgs)+1),
		errors:   make(chan *sarama.ConsumerError, 1),
		hwm:      hwm,
	}
	for _, m := range msgs {
		pc.messages <- m
	}
	return pc
}

func (f *fakePartitionConsumer) Messages() <-chan *sarama.ConsumerMessage { return f.messages }
func (f *fakePartitionConsumer) Errors() <-chan *sarama.ConsumerError     { return f.errors }
func (f *fakePartitionConsumer) HighWaterMarkOffset() int64                { return f.hwm }
func (f *fakePartitionConsumer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

type consumeCall struct {
	topic     string
	partition int32
	offset    int64
}

type fakeConsumer struct {
	mu    sync.Mutex
	calls []consumeCall
	next  func(call consumeCall) (PartitionConsumer, error)
}

func (f *fakeConsumer) ConsumePartition(topic string, partition int32, offset int64) (PartitionConsumer, error) {
	call := consumeCall{topic: topic, partition: partition, offset: offset}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return f.next(call)
}

func message(partition int32, offset int64, ts time.Time) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     "orders",
		Partition: partition,
		Offset:    offset,
		Key:       []byte("k"),
		Value:     []byte("v"),
		Timestamp: ts,
		Headers:   []*sarama.RecordHeader{{Key: []byte("source"), Value: []byte("test")}},
	}
}

type KafkaTestSuite struct {
	suite.Suite
	ctx    context.Context
	client *fakeClient
}

func (s *KafkaTestSuite) SetupSuite() {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(l)
}

func (s *KafkaTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client = &fakeClient{topics: map[string][]domain.Watermark{
		"orders":   {{Low: 0, High: 100}, {Low: 0, High: 50}},
		"payments": {{Low: 5, High: 10}},
		"empty":    {},
	}}
}

func collect(ch <-chan domain.TopicResult) []domain.TopicResult {
	var out []domain.TopicResult
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func (s *KafkaTestSuite) TestFindByNames() {
	f := NewTopicsFinder(s.client, time.Second)
	results := collect(f.FindBy(s.ctx, domain.Direct("payments", "orders", "missing", "empty")))
	s.Require().Len(results, 4)

	s.NoError(results[0].Err)
	s.Equal(domain.TopicName("payments"), results[0].Topic.Name)
	s.Equal(domain.Count(5), results[0].Topic.Size())

	orders := results[1].Topic
	s.NoError(results[1].Err)
	s.Require().Len(orders.Partitions, 2)
	s.Equal(domain.PartitionID(0), orders.Partitions[0].ID)
	s.Equal(domain.Count(150), orders.Size())

	s.ErrorIs(results[2].Err, domain.ErrNotFound)
	s.ErrorIs(results[3].Err, domain.ErrNotFound)
}

func (s *KafkaTestSuite) TestFindByPattern() {
	f := NewTopicsFinder(s.client, time.Second)
	results := collect(f.FindBy(s.ctx, domain.Matching(regexp.MustCompile(`^(orders|payments)$`))))
	s.Require().Len(results, 2)
	s.Equal(domain.TopicName("orders"), results[0].Topic.Name)
	s.Equal(domain.TopicName("payments"), results[1].Topic.Name)
}

func (s *KafkaTestSuite) TestFindByTimeout() {
	s.client.delay = 200 * time.Millisecond
	f := NewTopicsFinder(s.client, 10*time.Millisecond)
	results := collect(f.FindBy(s.ctx, domain.Direct("orders")))
	s.Require().Len(results, 1)

	var brokerErr *domain.BrokerError
	s.Require().ErrorAs(results[0].Err, &brokerErr)
	s.True(brokerErr.Timeout())
}

func (s *KafkaTestSuite) TestFindByBrokerError() {
	s.client.refreshErr = sarama.ErrBrokerNotAvailable
	f := NewTopicsFinder(s.client, time.Second)

	results := collect(f.FindBy(s.ctx, domain.Direct("orders")))
	s.Require().Len(results, 1)
	s.ErrorIs(results[0].Err, domain.ErrBroker)

	results = collect(f.FindBy(s.ctx, domain.Matching(regexp.MustCompile(`.*`))))
	s.Require().Len(results, 1)
	s.ErrorIs(results[0].Err, domain.ErrBroker)
}

func (s *KafkaTestSuite) TestFindByStopsWhenCancelled() {
	f := NewTopicsFinder(s.client, time.Second)
	ctx, cancel := context.WithCancel(s.ctx)
	ch := f.FindBy(ctx, domain.Direct("orders", "payments", "orders", "payments"))
	<-ch
	cancel()
	// the producer must close the channel rather than block on a reader that left
	for range ch {
	}
}

func (s *KafkaTestSuite) TestTimestampAt() {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var opened []*fakePartitionConsumer
	consumer := &fakeConsumer{next: func(call consumeCall) (PartitionConsumer, error) {
		pc := newFakePartitionConsumer(100, message(call.partition, call.offset+2, ts))
		opened = append(opened, pc)
		return pc, nil
	}}
	lookup := NewTimestampLookup(consumer, time.Second)

	got, err := lookup.TimestampAt(s.ctx, "orders", 1, 40)
	s.Require().NoError(err)
	s.Equal(ts, got)
	s.Equal([]consumeCall{{topic: "orders", partition: 1, offset: 40}}, consumer.calls)
	s.Equal(1, opened[0].closes)
}

func (s *KafkaTestSuite) TestTimestampAtErrors() {
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) {
		return nil, sarama.ErrUnknownTopicOrPartition
	}}
	_, err := NewTimestampLookup(consumer, time.Second).TimestampAt(s.ctx, "orders", 7, 0)
	s.ErrorIs(err, domain.ErrNotFound)

	consumer.next = func(consumeCall) (PartitionConsumer, error) {
		return newFakePartitionConsumer(0), nil
	}
	_, err = NewTimestampLookup(consumer, 10*time.Millisecond).TimestampAt(s.ctx, "orders", 0, 0)
	var brokerErr *domain.BrokerError
	s.Require().ErrorAs(err, &brokerErr)
	s.True(brokerErr.Timeout())
}

func (s *KafkaTestSuite) TestTimestampAtCancelled() {
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) {
		return newFakePartitionConsumer(100), nil
	}}
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := NewTimestampLookup(consumer, time.Second).TimestampAt(ctx, "orders", 0, 10)
	s.ErrorIs(err, domain.ErrBroker)
	s.ErrorIs(err, context.Canceled)
	s.Empty(consumer.calls)
}

func (s *KafkaTestSuite) TestCursorReadsMessages() {
	ts := time.Now()
	pc := newFakePartitionConsumer(3, message(0, 1, ts), message(0, 2, ts))
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) { return pc, nil }}

	c, err := NewCursorOpener(consumer, time.Second).Open(s.ctx, "orders", 0, 1, 3)
	s.Require().NoError(err)
	s.Equal(int64(1), consumer.calls[0].offset)

	r, err := c.Next(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.Offset(1), r.Offset)
	s.Equal(domain.TopicName("orders"), r.Topic)
	s.Equal([]byte("v"), r.Payload)
	s.Equal(map[string]string{"source": "test"}, r.Headers)

	r, err = c.Next(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.Offset(2), r.Offset)

	s.NoError(c.Close())
	s.NoError(c.Close())
	s.Equal(1, pc.closes)
}

func (s *KafkaTestSuite) TestCursorIdleGap() {
	pc := newFakePartitionConsumer(10)
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) { return pc, nil }}
	c, err := NewCursorOpener(consumer, 10*time.Millisecond).Open(s.ctx, "orders", 0, 5, 10)
	s.Require().NoError(err)

	_, err = c.Next(s.ctx)
	s.ErrorIs(err, io.EOF)
	s.NoError(c.Close())
}

func (s *KafkaTestSuite) TestCursorFetchError() {
	pc := newFakePartitionConsumer(0)
	pc.errors <- &sarama.ConsumerError{Topic: "orders", Partition: 0, Err: sarama.ErrOffsetOutOfRange}
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) { return pc, nil }}
	c, err := NewCursorOpener(consumer, time.Second).Open(s.ctx, "orders", 0, 0, 10)
	s.Require().NoError(err)

	_, err = c.Next(s.ctx)
	s.ErrorIs(err, domain.ErrBroker)
	s.ErrorIs(err, sarama.ErrOffsetOutOfRange)
}

func (s *KafkaTestSuite) TestCursorCancelled() {
	pc := newFakePartitionConsumer(0)
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) { return pc, nil }}
	c, err := NewCursorOpener(consumer, time.Second).Open(s.ctx, "orders", 0, 0, 10)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = c.Next(ctx)
	s.ErrorIs(err, context.Canceled)
}

func (s *KafkaTestSuite) TestOpenError() {
	consumer := &fakeConsumer{next: func(consumeCall) (PartitionConsumer, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	_, err := NewCursorOpener(consumer, time.Second).Open(s.ctx, "orders", 0, 0, 10)
	var brokerErr *domain.BrokerError
	s.Require().ErrorAs(err, &brokerErr)
	s.Equal("consume", brokerErr.Op)
}

func (s *KafkaTestSuite) TestContextWiring() {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	consumer := &fakeConsumer{next: func(call consumeCall) (PartitionConsumer, error) {
		msgs := []*sarama.ConsumerMessage{}
		for o := call.offset; o < 3; o++ {
			msgs = append(msgs, message(call.partition, o, ts.Add(time.Duration(o)*time.Second)))
		}
		return newFakePartitionConsumer(3, msgs...), nil
	}}
	s.client.topics["small"] = []domain.Watermark{{Low: 0, High: 3}, {Low: 0, High: 3}}
	props := config.DefaultProperties()
	props.IdleGap = 10 * time.Millisecond
	kctx := newContext(s.client, consumer, props)

	results := collect(kctx.TopicsFinder().FindBy(s.ctx, domain.Direct("small")))
	s.Require().Len(results, 1)
	s.Require().NoError(results[0].Err)

	est, err := kctx.QueryRangeEstimator().Estimate(s.ctx, results[0].Topic, domain.QueryRange{Start: domain.AtTime(ts.Add(time.Second))})
	s.Require().NoError(err)
	s.Equal(domain.Count(4), est.TotalCount())

	it := kctx.RecordFinder().FindBy(s.ctx, est)
	count := 0
	for it.Next() {
		s.GreaterOrEqual(it.Record().Offset, domain.Offset(1))
		count++
	}
	s.NoError(it.Err())
	s.NoError(it.Close())
	s.Equal(4, count)
	s.NoError(kctx.Close())
}

func (s *KafkaTestSuite) TestSaramaConfig() {
	props := config.DefaultProperties()
	props.KafkaVersion = "3.6.0"
	cfg, err := SaramaConfig(props)
	s.Require().NoError(err)
	s.Equal(sarama.V3_6_0_0, cfg.Version)
	s.Equal(props.Timeout, cfg.Metadata.Timeout)
	// a timed out metadata call must not outlive its caller by more than one bound
	s.Equal(props.Timeout, cfg.Net.DialTimeout)
	s.Equal(props.Timeout, cfg.Net.ReadTimeout)
	s.True(cfg.Consumer.Return.Errors)

	props.KafkaVersion = "not-a-version"
	_, err = SaramaConfig(props)
	s.ErrorIs(err, config.ErrInvalidProperties)
}

func TestKafkaTestSuite(t *testing.T) {
	suite.Run(t, new(KafkaTestSuite))
}
