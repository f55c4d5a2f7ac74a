package sink

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/binarymatt/k4q/internal/domain"
)

type Sink interface {
	Write(ctx context.Context, r domain.Record) error
	Close() error
}

// Multi writes every record to each sink in order. Close closes all of them.
type Multi []Sink

func (m Multi) Write(ctx context.Context, r domain.Record) error {
	for _, s := range m {
		if err := s.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var result *multierror.Error
	for _, s := range m {
		if err := s.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
