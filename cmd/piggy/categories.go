package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/piggy/internal/cli"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List goal categories",
		Long:  `Show the categories goals can be filed under, with the number of goals in each.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			categories := mgr.Categories()
			if len(categories) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No categories configured. Set goals.categories in the config file."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", cli.LabelStyle.Render("CATEGORY"), cli.LabelStyle.Render("GOALS"))
			for _, category := range categories {
				fmt.Fprintf(w, "%s\t%d\n", category, len(mgr.ListGoalsByCategory(category)))
			}
			return w.Flush()
		},
	}
}
