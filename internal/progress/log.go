package progress

import (
	"log/slog"

	"github.com/binarymatt/k4q/internal/domain"
)

// Log reports progress as structured log lines, one per completed tenth.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(message string) {
	l.logger.Info(message)
}

func (l *Log) Start(estimatedMax domain.Count) domain.Progress {
	l.logger.Info("query started", "expected", uint64(estimatedMax))
	return &logProgress{logger: l.logger, max: uint64(estimatedMax)}
}

type logProgress struct {
	logger   *slog.Logger
	max      uint64
	consumed uint64
	decile   uint64
	done     bool
}

func (p *logProgress) Increment() {
	if p.done {
		return
	}
	p.consumed++
	if p.max == 0 {
		return
	}
	if d := p.consumed * 10 / p.max; d > p.decile && d <= 10 {
		p.decile = d
		p.logger.Info("query progress", "consumed", p.consumed, "expected", p.max, "percent", d*10)
	}
}

func (p *logProgress) Complete() {
	if p.done {
		return
	}
	p.done = true
	p.logger.Info("query complete", "consumed", p.consumed, "expected", p.max)
}
