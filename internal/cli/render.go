package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/piggy/internal/model"
)

// FormatMoney renders an amount with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatStatus renders a status as its stored label followed by the English
// name.
func FormatStatus(status model.GoalStatus) string {
	return fmt.Sprintf("%s (%s)", status, status.English())
}

func completionText(goal model.Goal) string {
	if date, ok := goal.CompletionDate(); ok {
		return date.String()
	}
	return "-"
}

// RenderGoal renders one goal as a bordered card.
func RenderGoal(goal model.Goal) string {
	rows := [][2]string{
		{"Category", goal.Category()},
		{"Target", FormatMoney(goal.TargetAmount())},
		{"Saved", FormatMoney(goal.Balance())},
		{"Progress", fmt.Sprintf("%.1f%%", goal.Progress())},
		{"Started", goal.StartDate().String()},
		{"Completed", completionText(goal)},
		{"Status", FormatStatus(goal.Status())},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-10s", row[0])))
		b.WriteString(" ")
		b.WriteString(row[1])
	}
	return RenderBox(goal.Name(), b.String())
}

// WriteGoalCards writes every goal as a card, one after another.
func WriteGoalCards(w io.Writer, goals []model.Goal) error {
	for _, goal := range goals {
		if _, err := fmt.Fprintln(w, RenderGoal(goal)); err != nil {
			return err
		}
	}
	return nil
}

// WriteGoalTable writes goals as an aligned table.
func WriteGoalTable(w io.Writer, goals []model.Goal) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tSAVED\tTARGET\tPROGRESS\tSTATUS\tSTARTED\tCOMPLETED")
	for _, goal := range goals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f%%\t%s\t%s\t%s\n",
			goal.Name(),
			goal.Category(),
			FormatMoney(goal.Balance()),
			FormatMoney(goal.TargetAmount()),
			goal.Progress(),
			goal.Status().English(),
			goal.StartDate(),
			completionText(goal))
	}
	return tw.Flush()
}

// WriteProgressBars writes one bar per goal followed by the overall bar.
func WriteProgressBars(w io.Writer, goals []model.Goal, total float64) error {
	width := 0
	for _, goal := range goals {
		width = max(width, len([]rune(goal.Name())))
	}
	width = max(width, len("Total"))

	for _, goal := range goals {
		if err := writeBar(w, padRight(goal.Name(), width), goal.Progress()); err != nil {
			return err
		}
	}
	return writeBar(w, padRight("Total", width), total)
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func writeBar(w io.Writer, description string, percent float64) error {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	// Set does not draw when the value is unchanged, so 0% needs a blank render.
	if err := bar.RenderBlank(); err != nil {
		return fmt.Errorf("failed to render progress for %q: %w", strings.TrimSpace(description), err)
	}
	value := int(math.Round(min(max(percent, 0), 100)))
	if err := bar.Set(value); err != nil {
		return fmt.Errorf("failed to render progress for %q: %w", strings.TrimSpace(description), err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
