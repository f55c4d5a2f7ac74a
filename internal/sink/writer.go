// Package sink delivers streamed records to their destinations.
package sink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"

	"github.com/binarymatt/k4q/internal/domain"
)

var ErrUnknownFormat = errors.New("unknown output format")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	FormatJSON = "json"
	FormatText = "text"
)

type jsonRecord struct {
	Topic     string            `json:"topic"`
	Partition int32             `json:"partition"`
	Offset    int64             `json:"offset"`
	Timestamp time.Time         `json:"timestamp"`
	Key       string            `json:"key,omitempty"`
	Value     string            `json:"value"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// Writer prints one record per line, as JSON or as colored text.
type Writer struct {
	out    *bufio.Writer
	format string
}

func NewWriter(out io.Writer, format string) (*Writer, error) {
	switch format {
	case "", FormatJSON:
		format = FormatJSON
	case FormatText:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &Writer{out: bufio.NewWriter(out), format: format}, nil
}

func (w *Writer) Write(_ context.Context, r domain.Record) error {
	if w.format == FormatText {
		_, err := fmt.Fprintf(w.out, "%s %s %s %s\n",
			color.CyanString("%s/%d@%d", r.Topic, r.Partition, r.Offset),
			r.Timestamp.UTC().Format(time.RFC3339Nano),
			color.YellowString("%s", r.Key),
			r.Payload,
		)
		return err
	}
	data, err := json.Marshal(jsonRecord{
		Topic:     string(r.Topic),
		Partition: int32(r.Partition),
		Offset:    int64(r.Offset),
		Timestamp: r.Timestamp,
		Key:       string(r.Key),
		Value:     string(r.Payload),
		Headers:   r.Headers,
	})
	if err != nil {
		return err
	}
	if _, err := w.out.Write(data); err != nil {
		return err
	}
	return w.out.WriteByte('\n')
}

func (w *Writer) Close() error {
	return w.out.Flush()
}
