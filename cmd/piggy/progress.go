package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/piggy/internal/cli"
)

func progressCmd() *cobra.Command {
	var totalOnly bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show progress towards every goal",
		Long:  `Show a progress bar per goal and the combined progress of all goals.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			total := mgr.TotalProgress()
			if totalOnly {
				fmt.Fprintf(out, "Total progress across all goals: %.1f%%\n", total)
				return nil
			}

			fmt.Fprintln(out, cli.FormatTitle("Progress"))
			return cli.WriteProgressBars(out, mgr.ListGoals(), total)
		},
	}

	cmd.Flags().BoolVar(&totalOnly, "total", false, "only print the combined percentage")

	return cmd
}
