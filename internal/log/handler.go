package log

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.opentelemetry.io/otel/trace"
)

// TextHandler writes one colored line per record: time, level, message and the
// attributes sorted by key.
type TextHandler struct {
	slog.Handler
	l     *log.Logger
	attrs []slog.Attr
}

func NewTextHandler(out io.Writer, opts *slog.HandlerOptions) *TextHandler {
	return &TextHandler{
		Handler: slog.NewJSONHandler(io.Discard, opts),
		l:       log.New(out, "", 0),
	}
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TextHandler{
		l:       h.l,
		Handler: h.Handler.WithAttrs(attrs),
		attrs:   merged,
	}
}

func (h *TextHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Handler.Enabled(ctx, r.Level) {
		return nil
	}
	level := "[" + r.Level.String() + "]"
	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.GreenString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs()+1)
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })

	var b strings.Builder
	for _, a := range attrs {
		value := color.WhiteString("%v", a.Value.Any())
		if a.Key == "error" {
			value = color.RedString("%v", a.Value.Any())
		}
		fmt.Fprintf(&b, "%s=%s ", color.CyanString(a.Key), value)
	}
	timeStr := fmt.Sprintf("\x1b[%dm%v\x1b[0m", 90, r.Time.Format(time.RFC3339))
	h.l.Println(timeStr, level, color.WhiteString(r.Message), strings.TrimSpace(b.String()))
	return nil
}
