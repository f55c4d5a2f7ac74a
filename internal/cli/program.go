package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/kafka"
	"github.com/binarymatt/k4q/internal/log"
	"github.com/binarymatt/k4q/internal/progress"
	"github.com/binarymatt/k4q/internal/query"
	"github.com/binarymatt/k4q/internal/sink"
	"github.com/binarymatt/k4q/internal/store"
	"github.com/binarymatt/k4q/internal/telemetry"
)

// Backend is the set of query ports one broker connection provides.
type Backend interface {
	TopicsFinder() domain.TopicsFinder
	QueryRangeEstimator() domain.QueryRangeEstimator
	RecordFinder() domain.RecordFinder
	Close() error
}

type Connector func(props config.Properties, instruments *telemetry.Instruments) (Backend, error)

func ConnectKafka(props config.Properties, instruments *telemetry.Instruments) (Backend, error) {
	c, err := kafka.NewContext(props, kafka.WithInstruments(instruments))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Program executes recognized commands. Records go to Stdout; logs, progress and
// summaries go to Stderr.
type Program struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Connect   Connector
	OpenStore func(ctx context.Context, spec string) (store.Store, error)
}

func NewProgram(stdout, stderr io.Writer) *Program {
	return &Program{
		Stdout:    stdout,
		Stderr:    stderr,
		Connect:   ConnectKafka,
		OpenStore: store.Open,
	}
}

func (p *Program) Run(ctx context.Context, cfg *config.Config, cmd domain.Command) error {
	logger := SetupLogging(cfg, p.Stderr)
	closer, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    "k4q",
		OTLP:           cfg.OTLP,
		MetricsAddress: cfg.MetricsAddress,
	})
	defer closer()
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	ctx = log.WithContext(ctx, logger, "query_id", ulid.Make().String(), "command", cmd.Kind.String())
	ctx, span := telemetry.Tracer().Start(ctx, cmd.Kind.String())
	defer span.End()

	if cmd.Kind == domain.CommandInspect {
		return p.inspect(ctx, cmd)
	}

	instruments := telemetry.NewInstruments(telemetry.Meter())
	backend, err := p.Connect(cfg.Properties, instruments)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.FromContext(ctx).Warn("error closing kafka client", "error", err)
		}
	}()

	exec := query.New(
		backend.TopicsFinder(),
		backend.QueryRangeEstimator(),
		backend.RecordFinder(),
		p.notifier(ctx, cfg),
		query.WithInstruments(instruments),
	)
	switch cmd.Kind {
	case domain.CommandQuery:
		return p.query(ctx, exec, cmd)
	case domain.CommandCount:
		estimates, err := exec.Count(ctx, cmd.Matcher, cmd.Range)
		if err != nil {
			return err
		}
		return writeEstimates(p.Stdout, estimates)
	case domain.CommandDescribe:
		topics, err := exec.Describe(ctx, cmd.Matcher)
		if err != nil {
			return err
		}
		return writeTopics(p.Stdout, topics)
	default:
		return fmt.Errorf("unsupported command %s", cmd.Kind)
	}
}

func (p *Program) notifier(ctx context.Context, cfg *config.Config) domain.ProgressNotifier {
	if cfg.LogFormat == "console" {
		return progress.NewConsole(p.Stderr)
	}
	return progress.NewLog(log.FromContext(ctx))
}

func (p *Program) query(ctx context.Context, exec *query.Executor, cmd domain.Command) error {
	writer, err := sink.NewWriter(p.Stdout, cmd.Output)
	if err != nil {
		return err
	}
	sinks := sink.Multi{writer}
	var exported *sink.Store
	if cmd.Store != "" {
		st, err := p.OpenStore(ctx, cmd.Store)
		if err != nil {
			_ = writer.Close()
			return fmt.Errorf("open store: %w", err)
		}
		exported = sink.NewStore(st, sink.DefaultBatchSize)
		sinks = append(sinks, exported)
	}

	summary, err := exec.Query(ctx, cmd.Matcher, cmd.Range, sinks, cmd.Limit)
	closeErr := sinks.Close()
	if errors.Is(err, context.Canceled) {
		log.FromContext(ctx).Warn("query interrupted", "streamed", uint64(summary.Streamed()))
		err = nil
	}
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	return writeSummary(p.Stderr, summary, exported)
}

func (p *Program) inspect(ctx context.Context, cmd domain.Command) error {
	st, err := p.OpenStore(ctx, cmd.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.FromContext(ctx).Warn("error closing store", "error", err)
		}
	}()

	topics := make([]string, 0, len(cmd.Matcher.Names))
	for _, name := range cmd.Matcher.Names {
		topics = append(topics, name.String())
	}
	if len(topics) == 0 {
		if topics, err = st.ListTopics(ctx); err != nil {
			return err
		}
	}

	writer, err := sink.NewWriter(p.Stdout, cmd.Output)
	if err != nil {
		return err
	}
	for _, topic := range topics {
		records, err := st.GetRecords(ctx, topic, cmd.After, cmd.Limit)
		if err != nil {
			_ = writer.Close()
			return fmt.Errorf("read %s: %w", topic, err)
		}
		for _, r := range records {
			if err := writer.Write(ctx, r); err != nil {
				_ = writer.Close()
				return err
			}
		}
		if n := len(records); n > 0 && n == cmd.Limit {
			last := records[n-1]
			log.FromContext(ctx).Info("more records stored", "topic", topic, "after", store.RecordID(last.Partition, last.Offset))
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return writeStats(p.Stderr, topics, st.Stats())
}
