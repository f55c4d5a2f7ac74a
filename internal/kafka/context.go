package kafka

import (
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/hashicorp/go-multierror"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/estimate"
	"github.com/binarymatt/k4q/internal/stream"
	"github.com/binarymatt/k4q/internal/telemetry"
)

// Context owns one sarama client and consumer and hands out the query ports built
// on them. Every port shares the same client.
type Context struct {
	client   sarama.Client
	consumer sarama.Consumer

	topics      *TopicsFinder
	estimator   *estimate.Estimator
	records     *stream.Engine
	instruments *telemetry.Instruments
}

type ContextOption func(*Context)

func WithInstruments(i *telemetry.Instruments) ContextOption {
	return func(c *Context) {
		c.instruments = i
	}
}

func SaramaConfig(props config.Properties) (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = props.ClientID
	cfg.Metadata.Timeout = props.Timeout
	cfg.Net.DialTimeout = props.Timeout
	cfg.Net.ReadTimeout = props.Timeout
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	if props.Buffer > 0 {
		cfg.ChannelBufferSize = props.Buffer
	}
	if props.KafkaVersion != "" {
		version, err := sarama.ParseKafkaVersion(props.KafkaVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidProperties, err)
		}
		cfg.Version = version
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidProperties, err)
	}
	return cfg, nil
}

func NewContext(props config.Properties, opts ...ContextOption) (*Context, error) {
	cfg, err := SaramaConfig(props)
	if err != nil {
		return nil, err
	}
	slog.Debug("connecting to kafka", "brokers", props.Brokers, "client_id", cfg.ClientID)
	client, err := sarama.NewClient(props.Brokers, cfg)
	if err != nil {
		return nil, &domain.BrokerError{Op: "connect", Err: err}
	}
	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, &domain.BrokerError{Op: "connect", Err: err}
	}
	c := newContext(client, saramaConsumer{consumer: consumer}, props, opts...)
	c.client = client
	c.consumer = consumer
	return c, nil
}

func newContext(client MetadataClient, consumer Consumer, props config.Properties, opts ...ContextOption) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	c.topics = NewTopicsFinder(client, props.Timeout)
	c.estimator = estimate.New(NewTimestampLookup(consumer, props.Timeout))
	c.records = stream.New(
		NewCursorOpener(consumer, props.IdleGap),
		stream.WithBuffer(props.Buffer),
		stream.WithInstruments(c.instruments),
	)
	return c
}

func (c *Context) TopicsFinder() domain.TopicsFinder {
	return c.topics
}

func (c *Context) QueryRangeEstimator() domain.QueryRangeEstimator {
	return c.estimator
}

func (c *Context) RecordFinder() domain.RecordFinder {
	return c.records
}

func (c *Context) Close() error {
	var result *multierror.Error
	if c.consumer != nil {
		if err := c.consumer.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close consumer: %w", err))
		}
	}
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close client: %w", err))
		}
	}
	return result.ErrorOrNil()
}
