// Package cli holds the k4q command tree, the command recognizer and the
// program that executes recognized commands.
package cli

import (
	"time"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/binarymatt/k4q/internal/config"
)

// GlobalFlags can also be set from the yaml file named by --config.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:    "brokers",
			Usage:   "kafka bootstrap brokers",
			EnvVars: []string{"K4Q_BROKERS"},
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "client_id",
			Value: config.DefaultClientID,
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "kafka_version",
			Usage: "broker protocol version, e.g. 3.6.0",
		}),
		altsrc.NewDurationFlag(&cli.DurationFlag{
			Name:  "timeout",
			Usage: "metadata and lookup timeout",
			Value: config.DefaultTimeout,
		}),
		altsrc.NewDurationFlag(&cli.DurationFlag{
			Name:  "idle_gap",
			Usage: "how long a partition may stay silent once its end is written",
			Value: config.DefaultIdleGap,
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  "buffer",
			Usage: "records buffered per partition",
			Value: config.DefaultBuffer,
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "properties",
			Usage: "yaml file with kafka client properties",
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name: "console",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "log_format",
			Usage: "json, text or console",
			Value: "json",
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name: "debug",
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:  "otlp",
			Usage: "export traces over OTLP gRPC",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "metrics_address",
			Usage: "serve prometheus metrics on this address while running",
		}),
		&cli.StringFlag{
			Name: "config",
		},
	}
}

func topicFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "topic",
			Aliases: []string{"t"},
			Usage:   "topic name, repeatable",
		},
		&cli.StringFlag{
			Name:  "pattern",
			Usage: "regular expression over the cluster's topic names",
		},
	}
}

func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  "from-offset",
			Usage: "first offset, inclusive",
		},
		&cli.Int64Flag{
			Name:  "to-offset",
			Usage: "last offset, exclusive",
		},
		&cli.TimestampFlag{
			Name:   "from-time",
			Usage:  "first record time, RFC3339",
			Layout: time.RFC3339,
		},
		&cli.TimestampFlag{
			Name:   "to-time",
			Usage:  "end record time, RFC3339, exclusive",
			Layout: time.RFC3339,
		},
	}
}

func queryFlags() []cli.Flag {
	flags := append(topicFlags(), rangeFlags()...)
	return append(flags,
		&cli.StringFlag{
			Name:  "output",
			Usage: "json or text",
			Value: "json",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "also export records to badger:DIR or bolt:FILE",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "stop after this many records, 0 streams everything",
		},
	)
}

func inspectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "store",
			Usage:    "badger:DIR or bolt:FILE written by query --store",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "topic",
			Aliases: []string{"t"},
			Usage:   "stored topic, repeatable; every stored topic when omitted",
		},
		&cli.StringFlag{
			Name:  "after",
			Usage: "record id to continue after",
		},
		&cli.IntFlag{
			Name:  "limit",
			Value: 100,
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "json or text",
			Value: "json",
		},
	}
}
