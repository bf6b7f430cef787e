package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/piggy/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Browse goals in a full-screen dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			return tui.Run(cmd.Context(), mgr)
		},
	}
}
