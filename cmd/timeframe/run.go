package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leengari/timeframe/internal/display"
	"github.com/leengari/timeframe/internal/engine"
	"github.com/leengari/timeframe/internal/storage"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Run a pipeline definition and print its output table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.New(storage.CSVLoader{Logger: slog.Default()})
			eng.AddObserver(engine.NewLoggingObserver(slog.Default()))

			res, err := eng.RunFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if explain {
				fmt.Fprint(out, res.Plan)
				fmt.Fprintln(out)
			}
			if opts.json {
				return display.JSON(out, res.Table)
			}
			return display.Text(out, res.Table)
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "print the plan tree before the result")
	return cmd
}
