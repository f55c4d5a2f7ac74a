package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/binarymatt/k4q/internal/domain"
	"github.com/binarymatt/k4q/internal/query"
	"github.com/binarymatt/k4q/internal/sink"
	"github.com/binarymatt/k4q/internal/store"
)

func comma(c domain.Count) string {
	return humanize.Comma(int64(c))
}

func writeEstimates(out io.Writer, estimates []domain.EstimatedQueryRange) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tPARTITION\tSTART\tEND\tCOUNT")
	var total domain.Count
	for _, est := range estimates {
		for _, r := range est.Ranges() {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", est.Topic(), r.Partition, r.Range.Start, r.Range.End, comma(r.Range.Count()))
		}
		total += est.TotalCount()
	}
	fmt.Fprintf(w, "total\t\t\t\t%s\n", comma(total))
	return w.Flush()
}

func writeTopics(out io.Writer, topics []domain.Topic) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tPARTITION\tLOW\tHIGH\tRECORDS")
	for _, t := range topics {
		for _, p := range t.Partitions {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", t.Name, p.ID, p.Watermark.Low, p.Watermark.High, comma(p.Watermark.Size()))
		}
		fmt.Fprintf(w, "%s\t\t\t\t%s\n", t.Name, comma(t.Size()))
	}
	return w.Flush()
}

func writeSummary(out io.Writer, summary query.Summary, exported *sink.Store) error {
	_, err := fmt.Fprintf(out, "streamed %s of %s estimated records from %s topics\n",
		comma(summary.Streamed()), comma(summary.Estimated()), humanize.Comma(int64(len(summary.Topics))))
	if err != nil || exported == nil {
		return err
	}
	_, err = fmt.Fprintf(out, "exported %s records\n", humanize.Comma(int64(exported.Written())))
	return err
}

func writeStats(out io.Writer, topics []string, stats map[string]store.TopicMetadata) error {
	for _, topic := range topics {
		meta, ok := stats[topic]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s: %s records stored %s\n", topic, humanize.Comma(meta.RecordCount), humanize.Time(meta.CreatedAt)); err != nil {
			return err
		}
	}
	return nil
}
