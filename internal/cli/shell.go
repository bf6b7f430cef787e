package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/model"
	"github.com/Veraticus/piggy/internal/service"
)

var menuItems = []string{
	"Add goal",
	"List all goals",
	"List goals by category",
	"Deposit to goal",
	"Withdraw from goal",
	"Change goal status",
	"Remove goal",
	"Total progress",
	"Exit",
}

// Shell is the numbered interactive menu over a goal service.
type Shell struct {
	goals  service.GoalService
	reader *NonBlockingReader
	out    io.Writer
}

// NewShell creates a shell reading commands from in and writing to out.
func NewShell(goals service.GoalService, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		goals:  goals,
		reader: NewNonBlockingReader(in),
		out:    out,
	}
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
// Operation failures are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.printMenu()

		choice, err := s.prompt(ctx, fmt.Sprintf("Choose an action (1-%d)", len(menuItems)))
		if err != nil {
			return s.stop(err)
		}
		s.println("")

		if choice == strconv.Itoa(len(menuItems)) {
			s.println(WarningStyle.Render("Goodbye!"))
			return nil
		}

		action, ok := s.actions()[choice]
		if !ok {
			s.println(FormatError(fmt.Sprintf("Invalid choice. Enter a number from 1 to %d.", len(menuItems))))
			continue
		}
		if err := action(ctx); err != nil {
			if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
				return s.stop(err)
			}
			s.println(FormatError(common.UserMessage(err)))
		}
	}
}

func (s *Shell) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
		s.println("")
		return nil
	}
	return err
}

func (s *Shell) actions() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"1": s.addGoal,
		"2": s.listGoals,
		"3": s.listByCategory,
		"4": s.deposit,
		"5": s.withdraw,
		"6": s.changeStatus,
		"7": s.removeGoal,
		"8": s.totalProgress,
	}
}

func (s *Shell) printMenu() {
	s.println("")
	s.println(FormatTitle("Savings goals"))
	for i, item := range menuItems {
		s.println(MenuKeyStyle.Render(fmt.Sprintf("%d.", i+1)) + " " + item)
	}
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, FormatPrompt(label))
	return s.reader.ReadLine(ctx)
}

func (s *Shell) promptAmount(ctx context.Context, label string) (float64, error) {
	text, err := s.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("%q is not a number", text), common.ErrInvalidAmount)
	}
	return amount, nil
}

func (s *Shell) categoryLabel(prefix string) string {
	return fmt.Sprintf("%s (%s)", prefix, strings.Join(s.goals.Categories(), ", "))
}

func (s *Shell) addGoal(ctx context.Context) error {
	name, err := s.prompt(ctx, "Goal name")
	if err != nil {
		return err
	}
	target, err := s.promptAmount(ctx, "Target amount")
	if err != nil {
		return err
	}
	category, err := s.prompt(ctx, s.categoryLabel("Category"))
	if err != nil {
		return err
	}

	goal, err := s.goals.AddGoal(ctx, name, target, category)
	if err != nil {
		return err
	}
	s.println(FormatSuccess(fmt.Sprintf("Goal %q added!", goal.Name())))
	return nil
}

func (s *Shell) listGoals(_ context.Context) error {
	goals := s.goals.ListGoals()
	if len(goals) == 0 {
		s.println(FormatWarning("No goals yet!"))
		return nil
	}
	return WriteGoalCards(s.out, goals)
}

func (s *Shell) listByCategory(ctx context.Context) error {
	category, err := s.prompt(ctx, s.categoryLabel("Category"))
	if err != nil {
		return err
	}

	goals := s.goals.ListGoalsByCategory(category)
	if len(goals) == 0 {
		s.println(FormatWarning("No goals in this category!"))
		return nil
	}
	return WriteGoalCards(s.out, goals)
}

func (s *Shell) deposit(ctx context.Context) error {
	name, err := s.prompt(ctx, "Goal name")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount(ctx, "Amount to deposit")
	if err != nil {
		return err
	}

	goal, err := s.goals.DepositTo(ctx, name, amount)
	if err != nil {
		return err
	}
	s.println(FormatSuccess(fmt.Sprintf("Deposited %s. Current balance: %s",
		FormatMoney(amount), FormatMoney(goal.Balance()))))
	if goal.Status() == model.StatusCompleted {
		s.println(FormatInfo(fmt.Sprintf("Goal %q is complete!", goal.Name())))
	}
	return nil
}

func (s *Shell) withdraw(ctx context.Context) error {
	name, err := s.prompt(ctx, "Goal name")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount(ctx, "Amount to withdraw")
	if err != nil {
		return err
	}

	goal, err := s.goals.WithdrawFrom(ctx, name, amount)
	if err != nil {
		return err
	}
	s.println(FormatSuccess(fmt.Sprintf("Withdrew %s. Current balance: %s",
		FormatMoney(amount), FormatMoney(goal.Balance()))))
	return nil
}

func (s *Shell) changeStatus(ctx context.Context) error {
	name, err := s.prompt(ctx, "Goal name")
	if err != nil {
		return err
	}
	labels := make([]string, 0, len(model.Statuses))
	for _, status := range model.Statuses {
		labels = append(labels, string(status))
	}
	text, err := s.prompt(ctx, fmt.Sprintf("New status (%s)", strings.Join(labels, "/")))
	if err != nil {
		return err
	}

	status, err := model.ParseStatus(text)
	if err != nil {
		return err
	}
	goal, err := s.goals.SetStatus(ctx, name, status)
	if err != nil {
		return err
	}
	s.println(FormatSuccess(fmt.Sprintf("Goal %q is now %s", goal.Name(), FormatStatus(goal.Status()))))
	return nil
}

func (s *Shell) removeGoal(ctx context.Context) error {
	name, err := s.prompt(ctx, "Goal name")
	if err != nil {
		return err
	}

	removed, err := s.goals.RemoveGoal(ctx, name)
	if err != nil {
		return err
	}
	if !removed {
		s.println(FormatError("Goal not found!"))
		return nil
	}
	s.println(FormatSuccess(fmt.Sprintf("Goal %q removed!", name)))
	return nil
}

func (s *Shell) totalProgress(_ context.Context) error {
	s.println(InfoStyle.Render(fmt.Sprintf("Total progress across all goals: %.1f%%", s.goals.TotalProgress())))
	return nil
}
