package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/timeframe/internal/logging"
)

type rootOptions struct {
	debug  bool
	seqURL string
	json   bool

	setupLogger func(logging.Config) (*slog.Logger, func())
	closeLogger func()
}

// flushLogs closes the logger set up for the command, if any.
func (o *rootOptions) flushLogs() {
	if o.closeLogger != nil {
		o.closeLogger()
		o.closeLogger = nil
	}
}

func main() {
	opts := newRootOptions()
	if err := execute(newRootCommand(opts), opts); err != nil {
		os.Exit(1)
	}
}

func newRootOptions() *rootOptions {
	return &rootOptions{setupLogger: logging.SetupLogger}
}

// execute runs root and flushes the log sinks whether or not the command failed.
func execute(root *cobra.Command, opts *rootOptions) error {
	defer opts.flushLogs()
	return root.Execute()
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "timeframe",
		Short:         "Index-aligned time-series tables from CSV files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logging.Config{Level: slog.LevelWarn, SeqURL: opts.seqURL}
			if opts.debug {
				cfg.Level = slog.LevelDebug
			}
			var logger *slog.Logger
			logger, opts.closeLogger = opts.setupLogger(cfg)
			slog.SetDefault(logger)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "log debug output to stderr")
	flags.StringVar(&opts.seqURL, "seq-url", "", "also send logs to this Seq endpoint")
	flags.BoolVar(&opts.json, "json", false, "print tables as JSON")

	root.AddCommand(newShowCommand(opts), newRunCommand(opts))
	return root
}
