package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leengari/timeframe/internal/display"
	"github.com/leengari/timeframe/internal/storage"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	var (
		index string
		head  int
	)
	cmd := &cobra.Command{
		Use:   "show <file.csv>",
		Short: "Load a CSV file and print it as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := storage.LoadCSV(args[0], index, slog.Default())
			if err != nil {
				return err
			}
			if head > 0 {
				t = t.Head(head)
			}
			if opts.json {
				return display.JSON(cmd.OutOrStdout(), t)
			}
			return display.Text(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().StringVar(&index, "index", "", "index column (default: automatic)")
	cmd.Flags().IntVar(&head, "head", 0, "print only the first n rows")
	return cmd
}
