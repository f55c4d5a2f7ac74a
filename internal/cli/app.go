package cli

import (
	"context"
	"io"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/binarymatt/k4q/internal/config"
	"github.com/binarymatt/k4q/internal/domain"
)

// Runner executes a recognized command.
type Runner interface {
	Run(ctx context.Context, cfg *config.Config, cmd domain.Command) error
}

type RunnerFunc func(ctx context.Context, cfg *config.Config, cmd domain.Command) error

func (f RunnerFunc) Run(ctx context.Context, cfg *config.Config, cmd domain.Command) error {
	return f(ctx, cfg, cmd)
}

// NewApp builds the k4q command tree. A nil source reads properties files from disk.
func NewApp(runner Runner, source config.PropertiesSource) *cli.App {
	return newApp(func(cctx *cli.Context, kind domain.CommandKind) error {
		cfg, err := config.New(cctx, source)
		if err != nil {
			return err
		}
		cmd, err := Command(cctx, kind)
		if err != nil {
			return err
		}
		return runner.Run(cctx.Context, cfg, cmd)
	})
}

func newApp(run func(cctx *cli.Context, kind domain.CommandKind) error) *cli.App {
	flags := GlobalFlags()
	action := func(kind domain.CommandKind) cli.ActionFunc {
		return func(cctx *cli.Context) error {
			return run(cctx, kind)
		}
	}
	return &cli.App{
		Name:   "k4q",
		Usage:  "query kafka topics by offset or time range",
		Before: altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc("config")),
		Flags:  flags,
		Commands: []*cli.Command{
			{
				Name:   "query",
				Usage:  "stream the records of a range",
				Flags:  queryFlags(),
				Action: action(domain.CommandQuery),
			},
			{
				Name:   "count",
				Usage:  "estimate how many records a range holds",
				Flags:  append(topicFlags(), rangeFlags()...),
				Action: action(domain.CommandCount),
			},
			{
				Name:   "describe",
				Usage:  "show partitions and watermarks",
				Flags:  topicFlags(),
				Action: action(domain.CommandDescribe),
			},
			{
				Name:   "inspect",
				Usage:  "read back records exported with query --store",
				Flags:  inspectFlags(),
				Action: action(domain.CommandInspect),
			},
		},
	}
}

// Recognizer parses arguments with the same command tree as the binary. It neither
// loads configuration nor runs anything.
type Recognizer struct{}

var _ domain.CommandRecognizer = Recognizer{}

// Recognize expects args without the program name.
func (r Recognizer) Recognize(args []string) (domain.Command, bool) {
	var recognized *domain.Command
	app := newApp(func(cctx *cli.Context, kind domain.CommandKind) error {
		cmd, err := Command(cctx, kind)
		if err != nil {
			return err
		}
		recognized = &cmd
		return nil
	})
	app.Before = nil
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}

	if err := app.Run(append([]string{app.Name}, args...)); err != nil || recognized == nil {
		return domain.Command{}, false
	}
	return *recognized, true
}
