package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/estimate"
	"github.com/binarymatt/k4q/internal/store"
	"github.com/binarymatt/k4q/internal/telemetry"
	"github.com/binarymatt/k4q/mocks"
)

type fakeBackend struct {
	topics  domain.TopicsFinder
	records domain.RecordFinder
	closed  bool
}

func (f *fakeBackend) TopicsFinder() domain.TopicsFinder { return f.topics }
func (f *fakeBackend) QueryRangeEstimator() domain.QueryRangeEstimator {
	return estimate.New(nil)
}
func (f *fakeBackend) RecordFinder() domain.RecordFinder { return f.records }
func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

type sliceIterator struct {
	records []domain.Record
	pos     int
}

func (i *sliceIterator) Next() bool {
	if i.pos >= len(i.records) {
		return false
	}
	i.pos++
	return true
}

func (i *sliceIterator) Record() domain.Record { return i.records[i.pos-1] }
func (i *sliceIterator) Err() error            { return nil }
func (i *sliceIterator) Close() error          { return nil }

type ProgramTestSuite struct {
	suite.Suite
	ctx     context.Context
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	topics  *mocks.TopicsFinder
	records *mocks.RecordFinder
	backend *fakeBackend
	program *Program
	cfg     *config.Config
	orders  domain.Topic
}

func (s *ProgramTestSuite) SetupSuite() {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(l)
}

func (s *ProgramTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
	s.topics = mocks.NewTopicsFinder(s.T())
	s.records = mocks.NewRecordFinder(s.T())
	s.backend = &fakeBackend{topics: s.topics, records: s.records}
	s.program = NewProgram(s.stdout, s.stderr)
	s.program.Connect = func(config.Properties, *telemetry.Instruments) (Backend, error) {
		return s.backend, nil
	}
	s.cfg = &config.Config{LogFormat: "json", Properties: config.DefaultProperties()}

	orders, err := domain.NewTopic("orders",
		domain.Partition{ID: 0, Watermark: domain.Watermark{Low: 0, High: 100}},
		domain.Partition{ID: 1, Watermark: domain.Watermark{Low: 0, High: 50}},
	)
	s.Require().NoError(err)
	s.orders = orders
}

func (s *ProgramTestSuite) found(topics ...domain.Topic) {
	s.topics.EXPECT().FindBy(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, domain.TopicsMatcher) <-chan domain.TopicResult {
		out := make(chan domain.TopicResult, len(topics))
		for _, t := range topics {
			out <- domain.TopicResult{Topic: t}
		}
		close(out)
		return out
	})
}

func ordersRecords(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{Topic: "orders", Partition: domain.PartitionID(i % 2), Offset: domain.Offset(i / 2), Payload: []byte("payload")}
	}
	return out
}

func (s *ProgramTestSuite) TestCount() {
	s.found(s.orders)
	cmd := domain.Command{Kind: domain.CommandCount, Matcher: domain.Direct("orders"), Range: domain.WholeTopic()}

	s.Require().NoError(s.program.Run(s.ctx, s.cfg, cmd))
	out := s.stdout.String()
	s.Contains(out, "TOPIC")
	s.Contains(out, "150")
	s.Len(strings.Split(strings.TrimSpace(out), "\n"), 4)
	s.True(s.backend.closed)
}

func (s *ProgramTestSuite) TestDescribe() {
	s.found(s.orders)
	cmd := domain.Command{Kind: domain.CommandDescribe, Matcher: domain.Direct("orders")}

	s.Require().NoError(s.program.Run(s.ctx, s.cfg, cmd))
	out := s.stdout.String()
	s.Contains(out, "LOW")
	s.Contains(out, "100")
	s.Contains(out, "150")
}

func (s *ProgramTestSuite) TestQueryExportAndInspect() {
	s.found(s.orders)
	s.records.EXPECT().FindBy(mock.Anything, mock.Anything).Return(&sliceIterator{records: ordersRecords(4)})
	spec := "bolt:" + filepath.Join(s.T().TempDir(), "k4q.db")
	cmd := domain.Command{Kind: domain.CommandQuery, Matcher: domain.Direct("orders"), Range: domain.OffsetRangeQuery(0, 2), Output: "json", Store: spec}

	s.Require().NoError(s.program.Run(s.ctx, s.cfg, cmd))
	s.Equal(4, strings.Count(s.stdout.String(), "\n"))
	s.Contains(s.stdout.String(), `"topic":"orders"`)
	s.Contains(s.stderr.String(), "streamed 4 of 4 estimated records from 1 topics")
	s.Contains(s.stderr.String(), "exported 4 records")

	s.stdout.Reset()
	s.stderr.Reset()
	inspect := domain.Command{Kind: domain.CommandInspect, Store: spec, Output: "text", Limit: 3}
	s.Require().NoError(s.program.Run(s.ctx, s.cfg, inspect))
	s.Equal(3, strings.Count(s.stdout.String(), "\n"))
	s.Contains(s.stderr.String(), "orders: 4 records stored")
	s.Contains(s.stderr.String(), "more records stored")
}

func (s *ProgramTestSuite) TestQueryLimit() {
	s.found(s.orders)
	s.records.EXPECT().FindBy(mock.Anything, mock.Anything).Return(&sliceIterator{records: ordersRecords(10)})
	cmd := domain.Command{Kind: domain.CommandQuery, Matcher: domain.Direct("orders"), Range: domain.WholeTopic(), Output: "text", Limit: 2}

	s.Require().NoError(s.program.Run(s.ctx, s.cfg, cmd))
	s.Equal(2, strings.Count(s.stdout.String(), "\n"))
	s.Contains(s.stderr.String(), "streamed 2 of 150 estimated records")
}

func (s *ProgramTestSuite) TestQueryUnknownOutput() {
	cmd := domain.Command{Kind: domain.CommandQuery, Matcher: domain.Direct("orders"), Output: "xml"}
	err := s.program.Run(s.ctx, s.cfg, cmd)
	s.Error(err)
	s.True(s.backend.closed)
}

func (s *ProgramTestSuite) TestConnectError() {
	s.program.Connect = func(config.Properties, *telemetry.Instruments) (Backend, error) {
		return nil, &domain.BrokerError{Op: "connect", Err: errors.New("refused")}
	}
	cmd := domain.Command{Kind: domain.CommandDescribe, Matcher: domain.Direct("orders")}
	s.ErrorIs(s.program.Run(s.ctx, s.cfg, cmd), domain.ErrBroker)
}

func (s *ProgramTestSuite) TestInspectBadStore() {
	cmd := domain.Command{Kind: domain.CommandInspect, Store: "sqlite:/tmp/nope", Limit: 1}
	s.ErrorIs(s.program.Run(s.ctx, s.cfg, cmd), store.ErrInvalidSpec)
}

func TestProgramTestSuite(t *testing.T) {
	suite.Run(t, new(ProgramTestSuite))
}
