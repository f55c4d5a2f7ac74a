package domain

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

type TopicName string

func (t TopicName) String() string {
	return string(t)
}

func (t TopicName) Validate() error {
	if t == "" {
		return &RangeError{Reason: "topic name is empty"}
	}
	return nil
}

type PartitionID int32

type Offset int64

// Count is a non-negative number of records.
type Count uint64

// Watermark holds the earliest retained offset and the next offset to be written.
type Watermark struct {
	Low  Offset
	High Offset
}

func NewWatermark(low, high Offset) (Watermark, error) {
	if low > high {
		return Watermark{}, fmt.Errorf("watermark low %d is above high %d", low, high)
	}
	return Watermark{Low: low, High: high}, nil
}

func (w Watermark) Size() Count {
	return Count(w.High - w.Low)
}

type Partition struct {
	ID        PartitionID
	Watermark Watermark
}

type Topic struct {
	Name       TopicName
	Partitions []Partition
}

// NewTopic sorts partitions by id and rejects duplicates.
func NewTopic(name TopicName, partitions ...Partition) (Topic, error) {
	if err := name.Validate(); err != nil {
		return Topic{}, err
	}
	sorted := make([]Partition, len(partitions))
	copy(sorted, partitions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return Topic{}, fmt.Errorf("topic %s: duplicate partition %d", name, sorted[i].ID)
		}
	}
	return Topic{Name: name, Partitions: sorted}, nil
}

// Size is the number of records currently retained across all partitions.
func (t Topic) Size() Count {
	var total Count
	for _, p := range t.Partitions {
		total += p.Watermark.Size()
	}
	return total
}

func (t Topic) Partition(id PartitionID) (Partition, bool) {
	for _, p := range t.Partitions {
		if p.ID == id {
			return p, true
		}
	}
	return Partition{}, false
}

type positionKind int

const (
	unbounded positionKind = iota
	offsetBound
	timeBound
)

// Position is one end of a QueryRange. The zero value is unbounded.
type Position struct {
	kind   positionKind
	offset Offset
	at     time.Time
}

func Unbounded() Position {
	return Position{}
}

func AtOffset(o Offset) Position {
	return Position{kind: offsetBound, offset: o}
}

func AtTime(t time.Time) Position {
	return Position{kind: timeBound, at: t}
}

func (p Position) Bounded() bool {
	return p.kind != unbounded
}

func (p Position) IsOffset() bool {
	return p.kind == offsetBound
}

func (p Position) IsTime() bool {
	return p.kind == timeBound
}

func (p Position) Offset() Offset {
	return p.offset
}

func (p Position) Time() time.Time {
	return p.at
}

func (p Position) String() string {
	switch p.kind {
	case offsetBound:
		return fmt.Sprintf("offset %d", p.offset)
	case timeBound:
		return p.at.UTC().Format(time.RFC3339Nano)
	default:
		return "unbounded"
	}
}

// QueryRange is the caller's window. End is exclusive.
type QueryRange struct {
	Start Position
	End   Position
}

func WholeTopic() QueryRange {
	return QueryRange{}
}

func OffsetRangeQuery(start, end Offset) QueryRange {
	return QueryRange{Start: AtOffset(start), End: AtOffset(end)}
}

func TimeRangeQuery(start, end time.Time) QueryRange {
	return QueryRange{Start: AtTime(start), End: AtTime(end)}
}

// Validate reports a RangeError for an inverted, mixed or negative range.
func (q QueryRange) Validate() error {
	for _, p := range []Position{q.Start, q.End} {
		if p.IsOffset() && p.offset < 0 {
			return &RangeError{Reason: fmt.Sprintf("negative offset %d", p.offset)}
		}
	}
	if !q.Start.Bounded() || !q.End.Bounded() {
		return nil
	}
	if q.Start.kind != q.End.kind {
		return &RangeError{Reason: "start and end must both be offsets or both be times"}
	}
	switch {
	case q.Start.IsOffset() && q.End.offset < q.Start.offset:
		return &RangeError{Reason: fmt.Sprintf("end offset %d is before start offset %d", q.End.offset, q.Start.offset)}
	case q.Start.IsTime() && q.End.at.Before(q.Start.at):
		return &RangeError{Reason: fmt.Sprintf("end time %s is before start time %s", q.End, q.Start)}
	}
	return nil
}

func (q QueryRange) String() string {
	return fmt.Sprintf("[%s, %s)", q.Start, q.End)
}

// OffsetRange is a half open interval of partition offsets.
type OffsetRange struct {
	Start Offset
	End   Offset
}

func (r OffsetRange) Count() Count {
	if r.End <= r.Start {
		return 0
	}
	return Count(r.End - r.Start)
}

// Empty reports a partition that contributes nothing to the query. It is not an error.
func (r OffsetRange) Empty() bool {
	return r.Count() == 0
}

func (r OffsetRange) Contains(o Offset) bool {
	return o >= r.Start && o < r.End
}

type PartitionRange struct {
	Partition PartitionID
	Range     OffsetRange
}

// EstimatedQueryRange is the resolved per-partition plan of one query execution.
type EstimatedQueryRange struct {
	topic  TopicName
	ranges []PartitionRange
	total  Count
}

func NewEstimatedQueryRange(topic TopicName, ranges ...PartitionRange) EstimatedQueryRange {
	sorted := make([]PartitionRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Partition < sorted[j].Partition })
	var total Count
	for _, r := range sorted {
		total += r.Range.Count()
	}
	return EstimatedQueryRange{topic: topic, ranges: sorted, total: total}
}

func (e EstimatedQueryRange) Topic() TopicName {
	return e.topic
}

func (e EstimatedQueryRange) TotalCount() Count {
	return e.total
}

// Ranges returns a copy ordered by partition id.
func (e EstimatedQueryRange) Ranges() []PartitionRange {
	out := make([]PartitionRange, len(e.ranges))
	copy(out, e.ranges)
	return out
}

func (e EstimatedQueryRange) Offsets(p PartitionID) (OffsetRange, bool) {
	for _, r := range e.ranges {
		if r.Partition == p {
			return r.Range, true
		}
	}
	return OffsetRange{}, false
}

type Record struct {
	Topic     TopicName
	Partition PartitionID
	Offset    Offset
	Key       []byte
	Payload   []byte
	Timestamp time.Time
	Headers   map[string]string
}

// TopicsMatcher selects topics either by explicit names or by a pattern over the
// cluster's topic listing.
type TopicsMatcher struct {
	Names   []TopicName
	Pattern *regexp.Regexp
}

func Direct(names ...TopicName) TopicsMatcher {
	return TopicsMatcher{Names: names}
}

func Matching(pattern *regexp.Regexp) TopicsMatcher {
	return TopicsMatcher{Pattern: pattern}
}

func (m TopicsMatcher) IsDirect() bool {
	return m.Pattern == nil
}

type TopicResult struct {
	Topic Topic
	Err   error
}

type CommandKind int

const (
	CommandQuery CommandKind = iota + 1
	CommandCount
	CommandDescribe
	CommandInspect
)

func (k CommandKind) String() string {
	switch k {
	case CommandQuery:
		return "query"
	case CommandCount:
		return "count"
	case CommandDescribe:
		return "describe"
	case CommandInspect:
		return "inspect"
	default:
		return "unknown"
	}
}

type Command struct {
	Kind    CommandKind
	Matcher TopicsMatcher
	Range   QueryRange
	Output  string
	Store   string
	After   string
	Limit   int
}
