package progress

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		entry := map[string]any{}
		require.NoError(t, jsoniter.UnmarshalFromString(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))
	n.Notify("resolving topic orders")
	p := n.Start(20)
	for i := 0; i < 20; i++ {
		p.Increment()
	}
	p.Complete()
	p.Complete()

	lines := logLines(t, &buf)
	// notify, start, ten steps, one completion
	require.Len(t, lines, 13)
	require.Equal(t, "resolving topic orders", lines[0]["msg"])
	require.Equal(t, float64(10), lines[2]["percent"])
	require.Equal(t, float64(100), lines[11]["percent"])
	require.Equal(t, "query complete", lines[12]["msg"])
	require.Equal(t, float64(20), lines[12]["consumed"])
}

func TestLog_Undercount(t *testing.T) {
	var buf bytes.Buffer
	p := NewLog(slog.New(slog.NewJSONHandler(&buf, nil))).Start(2)
	for i := 0; i < 5; i++ {
		p.Increment()
	}
	p.Complete()

	lines := logLines(t, &buf)
	last := lines[len(lines)-1]
	require.Equal(t, float64(5), last["consumed"])
	require.Equal(t, float64(2), last["expected"])
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Notify("streaming orders")
	require.Contains(t, buf.String(), "streaming orders")

	p := c.Start(2)
	for i := 0; i < 4; i++ {
		p.Increment()
	}
	require.NotPanics(t, func() {
		p.Complete()
		p.Complete()
		p.Increment()
	})
}

func TestConsole_EmptyEstimate(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsole(&buf).Start(0)
	require.NotPanics(t, func() {
		p.Increment()
		p.Complete()
	})
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() {
		Discard.Notify("ignored")
		p := Discard.Start(10)
		p.Increment()
		p.Complete()
	})
}
