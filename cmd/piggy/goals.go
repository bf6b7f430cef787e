package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/piggy/internal/cli"
	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/model"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <target> <category>",
		Short: "Add a savings goal",
		Long:  `Create an active goal with a zero balance. The category must be one of 'piggy categories'.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			goal, err := mgr.AddGoal(cmd.Context(), args[0], target, args[2])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Goal %q added!", goal.Name())))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var (
		category string
		cards    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			goals := mgr.ListGoals()
			if category != "" {
				goals = mgr.ListGoalsByCategory(category)
			}

			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				if category != "" {
					fmt.Fprintln(out, cli.FormatWarning("No goals in this category!"))
				} else {
					fmt.Fprintln(out, cli.FormatWarning("No goals yet!"))
				}
				return nil
			}

			if cards {
				return cli.WriteGoalCards(out, goals)
			}
			return cli.WriteGoalTable(out, goals)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only show goals in this category")
	cmd.Flags().BoolVar(&cards, "cards", false, "show every goal as a detailed card")

	return cmd
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <name> <amount>",
		Short: "Put money into a goal",
		Long:  `Add to a goal's balance. Reaching the target completes the goal; any excess is not kept.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			goal, err := mgr.DepositTo(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deposited %s. Current balance: %s",
				cli.FormatMoney(amount), cli.FormatMoney(goal.Balance()))))
			if goal.Status() == model.StatusCompleted {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Goal %q is complete!", goal.Name())))
			}
			return nil
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <name> <amount>",
		Short: "Take money out of a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			goal, err := mgr.WithdrawFrom(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Withdrew %s. Current balance: %s",
				cli.FormatMoney(amount), cli.FormatMoney(goal.Balance()))))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <name> <status>",
		Short: "Change a goal's status",
		Long: `Set the status of a goal. Accepted values are активна, выполнена and отменена,
or their English names active, completed and cancelled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}

			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			goal, err := mgr.SetStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Goal %q is now %s",
				goal.Name(), cli.FormatStatus(goal.Status()))))
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			removed, err := mgr.RemoveGoal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%w: %q", common.ErrGoalNotFound, args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Goal %q removed!", args[0])))
			return nil
		},
	}
}
