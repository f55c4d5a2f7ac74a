package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBroker   = "localhost:9092"
	DefaultClientID = "k4q"
	DefaultTimeout  = 2 * time.Second
	DefaultIdleGap  = 2 * time.Second
	DefaultBuffer   = 64
)

type Config struct {
	Path           string
	LogFormat      string
	Debug          bool
	OTLP           bool
	MetricsAddress string
	Properties     Properties
}

// Properties are the Kafka client settings. They can come from a properties file
// and are overridden by flags.
type Properties struct {
	Brokers      []string      `yaml:"brokers"`
	ClientID     string        `yaml:"client_id"`
	KafkaVersion string        `yaml:"kafka_version"`
	Timeout      time.Duration `yaml:"timeout"`
	IdleGap      time.Duration `yaml:"idle_gap"`
	Buffer       int           `yaml:"buffer"`
}

func DefaultProperties() Properties {
	return Properties{
		Brokers:  []string{DefaultBroker},
		ClientID: DefaultClientID,
		Timeout:  DefaultTimeout,
		IdleGap:  DefaultIdleGap,
		Buffer:   DefaultBuffer,
	}
}

// Merge copies every field that is set in other over p.
func (p *Properties) Merge(other Properties) {
	if len(other.Brokers) > 0 {
		p.Brokers = other.Brokers
	}
	if other.ClientID != "" {
		p.ClientID = other.ClientID
	}
	if other.KafkaVersion != "" {
		p.KafkaVersion = other.KafkaVersion
	}
	if other.Timeout > 0 {
		p.Timeout = other.Timeout
	}
	if other.IdleGap > 0 {
		p.IdleGap = other.IdleGap
	}
	if other.Buffer > 0 {
		p.Buffer = other.Buffer
	}
}

func (p Properties) Validate() error {
	if len(p.Brokers) == 0 {
		return fmt.Errorf("%w: no brokers", ErrInvalidProperties)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidProperties)
	}
	if p.Buffer <= 0 {
		return fmt.Errorf("%w: buffer must be positive", ErrInvalidProperties)
	}
	return nil
}

type PropertiesSource interface {
	Load(path string) (*Properties, error)
}

type FileSource struct{}

func (FileSource) Load(path string) (*Properties, error) {
	return Parse(path)
}

// New builds the runtime config from the parsed command line. Properties start from
// the defaults, then the properties file, then any flag set explicitly.
func New(cctx *cli.Context, source PropertiesSource) (*Config, error) {
	cfg := &Config{
		Path:           cctx.String("config"),
		LogFormat:      cctx.String("log_format"),
		Debug:          cctx.Bool("debug"),
		OTLP:           cctx.Bool("otlp"),
		MetricsAddress: cctx.String("metrics_address"),
		Properties:     DefaultProperties(),
	}
	if cctx.Bool("console") && !cctx.IsSet("log_format") {
		cfg.LogFormat = "console"
	}
	if path := cctx.String("properties"); path != "" {
		if source == nil {
			source = FileSource{}
		}
		loaded, err := source.Load(path)
		if err != nil {
			return nil, err
		}
		cfg.Properties.Merge(*loaded)
	}

	overrides := Properties{}
	// altsrc fills slice flags without marking them set, so any value counts.
	if brokers := cctx.StringSlice("brokers"); len(brokers) > 0 {
		overrides.Brokers = brokers
	}
	if cctx.IsSet("client_id") {
		overrides.ClientID = cctx.String("client_id")
	}
	if cctx.IsSet("kafka_version") {
		overrides.KafkaVersion = cctx.String("kafka_version")
	}
	if cctx.IsSet("timeout") {
		overrides.Timeout = cctx.Duration("timeout")
	}
	if cctx.IsSet("idle_gap") {
		overrides.IdleGap = cctx.Duration("idle_gap")
	}
	if cctx.IsSet("buffer") {
		overrides.Buffer = cctx.Int("buffer")
	}
	cfg.Properties.Merge(overrides)
	return cfg, cfg.Properties.Validate()
}

func Parse(path string) (*Properties, error) {
	slog.Debug("parsing properties", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("could not read properties file", "error", err)
		return nil, err
	}
	props := Properties{}
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProperties, path, err)
	}
	return &props, nil
}
