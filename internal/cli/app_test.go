package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/domain"
)

func TestRecognize(t *testing.T) {
	r := Recognizer{}

	cmd, ok := r.Recognize([]string{"query", "--topic", "orders", "--topic", "payments", "--from-offset", "10", "--to-offset", "20", "--output", "text", "--limit", "5"})
	require.True(t, ok)
	require.Equal(t, domain.CommandQuery, cmd.Kind)
	require.Equal(t, []domain.TopicName{"orders", "payments"}, cmd.Matcher.Names)
	require.True(t, cmd.Matcher.IsDirect())
	require.Equal(t, domain.OffsetRangeQuery(10, 20), cmd.Range)
	require.Equal(t, "text", cmd.Output)
	require.Equal(t, 5, cmd.Limit)

	cmd, ok = r.Recognize([]string{"count", "--pattern", "^ord"})
	require.True(t, ok)
	require.Equal(t, domain.CommandCount, cmd.Kind)
	require.False(t, cmd.Matcher.IsDirect())
	require.Equal(t, "^ord", cmd.Matcher.Pattern.String())
	require.Equal(t, domain.WholeTopic(), cmd.Range)

	cmd, ok = r.Recognize([]string{"query", "-t", "orders", "--from-time", "2024-01-01T00:00:00Z", "--to-time", "2024-01-02T00:00:00Z"})
	require.True(t, ok)
	require.True(t, cmd.Range.Start.IsTime())
	require.True(t, cmd.Range.End.IsTime())
	require.True(t, cmd.Range.Start.Time().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, cmd.Range.End.Time().Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	cmd, ok = r.Recognize([]string{"--brokers", "kafka:9092", "describe", "--topic", "orders"})
	require.True(t, ok)
	require.Equal(t, domain.CommandDescribe, cmd.Kind)
	require.Equal(t, domain.Direct("orders"), cmd.Matcher)

	cmd, ok = r.Recognize([]string{"inspect", "--store", "bolt:/tmp/k4q.db", "--after", "00000-0000000000000000010"})
	require.True(t, ok)
	require.Equal(t, domain.CommandInspect, cmd.Kind)
	require.Equal(t, "bolt:/tmp/k4q.db", cmd.Store)
	require.Equal(t, "00000-0000000000000000010", cmd.After)
	require.Equal(t, 100, cmd.Limit)
	require.Empty(t, cmd.Matcher.Names)
}

func TestRecognize_SkipsConfiguration(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cmd, ok := Recognizer{}.Recognize([]string{"--properties", missing, "--config", missing, "describe", "--topic", "orders"})
	require.True(t, ok)
	require.Equal(t, domain.CommandDescribe, cmd.Kind)
	require.Equal(t, domain.Direct("orders"), cmd.Matcher)

	// running the same arguments does read the files
	_, _, err := run(t, nil, "--properties", missing, "describe", "--topic", "orders")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecognize_Rejects(t *testing.T) {
	cases := map[string][]string{
		"no arguments":      {},
		"unknown command":   {"bogus"},
		"no topics":         {"query"},
		"topic and pattern": {"query", "--topic", "a", "--pattern", "b"},
		"bad pattern":       {"count", "--pattern", "("},
		"inverted range":    {"query", "--topic", "a", "--from-offset", "50", "--to-offset", "10"},
		"negative offset":   {"count", "--topic", "a", "--from-offset", "-1"},
		"mixed start":       {"query", "--topic", "a", "--from-offset", "1", "--from-time", "2024-01-01T00:00:00Z"},
		"mixed kinds":       {"query", "--topic", "a", "--from-offset", "1", "--to-time", "2024-01-01T00:00:00Z"},
		"bad time":          {"query", "--topic", "a", "--from-time", "yesterday"},
		"negative limit":    {"query", "--topic", "a", "--limit", "-1"},
		"inspect no store":  {"inspect"},
		"unknown flag":      {"describe", "--topic", "a", "--nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := Recognizer{}.Recognize(args)
			require.False(t, ok)
		})
	}
}

func run(t *testing.T, source config.PropertiesSource, args ...string) (*config.Config, domain.Command, error) {
	t.Helper()
	var (
		cfg *config.Config
		cmd domain.Command
	)
	app := NewApp(RunnerFunc(func(_ context.Context, c *config.Config, d domain.Command) error {
		cfg, cmd = c, d
		return nil
	}), source)
	app.Writer = os.Stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"k4q"}, args...))
	return cfg, cmd, err
}

func TestNewApp_Errors(t *testing.T) {
	_, _, err := run(t, nil, "query", "--topic", "a", "--pattern", "b")
	require.ErrorIs(t, err, ErrConflictingTopics)

	_, _, err = run(t, nil, "count")
	require.ErrorIs(t, err, ErrNoTopics)

	_, _, err = run(t, nil, "count", "--topic", "a", "--from-offset", "9", "--to-offset", "3")
	require.ErrorIs(t, err, domain.ErrRange)
}

func TestNewApp_Flags(t *testing.T) {
	cfg, _, err := run(t, nil, "--brokers", "a:1", "--brokers", "b:2", "--timeout", "5s", "--debug", "describe", "--topic", "orders")
	require.NoError(t, err)
	require.Equal(t, []string{"a:1", "b:2"}, cfg.Properties.Brokers)
	require.Equal(t, 5*time.Second, cfg.Properties.Timeout)
	require.Equal(t, config.DefaultIdleGap, cfg.Properties.IdleGap)
	require.True(t, cfg.Debug)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestNewApp_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k4q.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brokers:\n  - c:3\nlog_format: text\nbuffer: 8\n"), 0o600))

	cfg, _, err := run(t, nil, "--config", path, "describe", "--topic", "orders")
	require.NoError(t, err)
	require.Equal(t, []string{"c:3"}, cfg.Properties.Brokers)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, 8, cfg.Properties.Buffer)
	require.Equal(t, path, cfg.Path)
}

type staticSource struct {
	props *config.Properties
	err   error
}

func (s staticSource) Load(string) (*config.Properties, error) {
	return s.props, s.err
}

func TestNewApp_PropertiesSource(t *testing.T) {
	source := staticSource{props: &config.Properties{ClientID: "from-file", Brokers: []string{"file:9092"}}}
	cfg, _, err := run(t, source, "--properties", "client.yaml", "--client_id", "from-flag", "describe", "--topic", "orders")
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.Properties.ClientID)
	require.Equal(t, []string{"file:9092"}, cfg.Properties.Brokers)

	errLoad := errors.New("unreadable")
	_, _, err = run(t, staticSource{err: errLoad}, "--properties", "client.yaml", "describe", "--topic", "orders")
	require.ErrorIs(t, err, errLoad)
}
