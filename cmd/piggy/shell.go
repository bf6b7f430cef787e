package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/piggy/internal/cli"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Manage goals from an interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interrupts.HandleInterrupts(cmd.Context())

			return cli.NewShell(mgr, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		},
	}
}
