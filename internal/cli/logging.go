package cli

import (
	"io"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/lmittmann/tint"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/log"
)

// SetupLogging installs the default logger for cfg.LogFormat. With --debug sarama's
// own logger is forwarded as well.
func SetupLogging(cfg *config.Config, out io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.Debug}

	var logger *slog.Logger
	switch cfg.LogFormat {
	case "console":
		logger = slog.New(tint.NewHandler(out, &tint.Options{
			Level: level,
		}))
	case "text":
		logger = slog.New(log.NewTextHandler(out, opts))
	default:
		logger = slog.New(slog.NewJSONHandler(out, opts))
	}
	slog.SetDefault(logger)

	if cfg.Debug {
		sarama.Logger = log.Sarama()
	}
	return logger
}
