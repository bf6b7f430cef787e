package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/piggy/internal/cli"
	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/config"
	"github.com/Veraticus/piggy/internal/ofx"
)

var errNoFiles = errors.New("no files found to import")

func importOFXCmd() *cobra.Command {
	var (
		goalName string
		match    string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Deposit incoming funds from OFX/QFX statements into a goal",
		Long: `Read OFX or QFX statements exported from your bank and deposit the sum of
their incoming transactions into one goal. Transactions seen twice (same
account and transaction ID) are counted once.

Examples:
  # Move every credit of a savings account statement into "Trip"
  piggy import-ofx ~/Downloads/savings_nov.qfx --goal Trip

  # Only count round-up transfers, and look before depositing
  piggy import-ofx ~/Downloads/*.ofx --goal Trip --match "round ?up" --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			credits, err := readCredits(cmd.Context(), files)
			if err != nil {
				return err
			}
			credits, err = ofx.Filter(credits, match)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := ofx.Total(credits)
			if err := writeCredits(out, credits); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d credits totaling %s\n", len(credits), cli.FormatMoney(total))

			if len(credits) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("Nothing to deposit."))
				return nil
			}
			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %s would be deposited into %q.",
					cli.FormatMoney(total), goalName)))
				return nil
			}

			mgr, closeStore, err := openManager(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			goal, err := mgr.DepositTo(cmd.Context(), goalName, total)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deposited %s into %q. Current balance: %s",
				cli.FormatMoney(total), goal.Name(), cli.FormatMoney(goal.Balance()))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goalName, "goal", "g", "", "goal to deposit into")
	cmd.Flags().StringVarP(&match, "match", "m", "", "only count credits whose description matches this regular expression")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "show what would be deposited without saving")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// expandFiles resolves globs; arguments that match nothing are used as-is
// when they name an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		pattern = config.ExpandPath(pattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("no files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, errNoFiles
	}
	return files, nil
}

func readCredits(ctx context.Context, files []string) ([]ofx.Credit, error) {
	parser := ofx.NewParser()

	var credits []ofx.Credit
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		fileCredits, err := parser.ParseCredits(ctx, f)
		_ = f.Close()
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Could not read statement %s", filepath.Base(path)), err)
		}

		slog.Debug("read statement", "file", path, "credits", len(fileCredits))
		credits = append(credits, fileCredits...)
	}
	return credits, nil
}

func writeCredits(w io.Writer, credits []ofx.Credit) error {
	if len(credits) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tACCOUNT\tDESCRIPTION\tAMOUNT")
	for _, c := range credits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Posted, c.Account, c.Description, cli.FormatMoney(c.Amount))
	}
	return tw.Flush()
}
