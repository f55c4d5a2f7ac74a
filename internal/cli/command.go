package cli

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/urfave/cli/v2"

	"github.com/binarymatt/k4q/internal/domain"
)

var (
	ErrNoTopics          = errors.New("either --topic or --pattern is required")
	ErrConflictingTopics = errors.New("--topic and --pattern are mutually exclusive")
)

// Command converts a parsed command line into a domain.Command of the given kind.
func Command(cctx *cli.Context, kind domain.CommandKind) (domain.Command, error) {
	cmd := domain.Command{
		Kind:   kind,
		Output: cctx.String("output"),
		Store:  cctx.String("store"),
		Limit:  cctx.Int("limit"),
		After:  cctx.String("after"),
		Range:  domain.WholeTopic(),
	}
	if cmd.Limit < 0 {
		return domain.Command{}, fmt.Errorf("limit must not be negative: %d", cmd.Limit)
	}
	if kind == domain.CommandInspect {
		if cmd.Limit == 0 {
			return domain.Command{}, errors.New("inspect needs a positive --limit")
		}
		cmd.Matcher = domain.Direct(names(cctx.StringSlice("topic"))...)
		return cmd, nil
	}

	matcher, err := matcherFrom(cctx)
	if err != nil {
		return domain.Command{}, err
	}
	cmd.Matcher = matcher
	if kind == domain.CommandDescribe {
		return cmd, nil
	}
	rng, err := rangeFrom(cctx)
	if err != nil {
		return domain.Command{}, err
	}
	cmd.Range = rng
	return cmd, nil
}

func names(in []string) []domain.TopicName {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.TopicName, len(in))
	for i, n := range in {
		out[i] = domain.TopicName(n)
	}
	return out
}

func matcherFrom(cctx *cli.Context) (domain.TopicsMatcher, error) {
	topics := cctx.StringSlice("topic")
	pattern := cctx.String("pattern")
	switch {
	case len(topics) > 0 && pattern != "":
		return domain.TopicsMatcher{}, ErrConflictingTopics
	case pattern != "":
		re, err := regexp.Compile(pattern)
		if err != nil {
			return domain.TopicsMatcher{}, fmt.Errorf("invalid pattern: %w", err)
		}
		return domain.Matching(re), nil
	case len(topics) > 0:
		return domain.Direct(names(topics)...), nil
	default:
		return domain.TopicsMatcher{}, ErrNoTopics
	}
}

func rangeFrom(cctx *cli.Context) (domain.QueryRange, error) {
	q := domain.WholeTopic()
	if cctx.IsSet("from-offset") {
		q.Start = domain.AtOffset(domain.Offset(cctx.Int64("from-offset")))
	}
	if cctx.IsSet("to-offset") {
		q.End = domain.AtOffset(domain.Offset(cctx.Int64("to-offset")))
	}
	if t := cctx.Timestamp("from-time"); t != nil {
		if q.Start.Bounded() {
			return domain.QueryRange{}, &domain.RangeError{Reason: "start given both as offset and as time"}
		}
		q.Start = domain.AtTime(*t)
	}
	if t := cctx.Timestamp("to-time"); t != nil {
		if q.End.Bounded() {
			return domain.QueryRange{}, &domain.RangeError{Reason: "end given both as offset and as time"}
		}
		q.End = domain.AtTime(*t)
	}
	return q, q.Validate()
}
