// Package ofx reads incoming funds from OFX/QFX bank statements so they can be
// deposited into a savings goal.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/piggy/internal/common"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Credit is one incoming transaction from a statement.
type Credit struct {
	Posted      civil.Date
	ID          string
	Account     string
	Description string
	Amount      float64
}

// Parser reads OFX/QFX statements.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes formatting slips that real bank exports contain.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseCredits returns the positive-amount transactions of every bank and
// credit card statement in reader, in file order.
func (p *Parser) ParseCredits(ctx context.Context, reader io.Reader) ([]Credit, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var credits []Credit
	var statements int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			statements++
			credits = append(credits, collectCredits(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			statements++
			credits = append(credits, collectCredits(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Debug("parsed OFX file",
		"statements", statements,
		"credits", len(credits))
	return credits, nil
}

func collectCredits(list *ofxgo.TransactionList, account string) []Credit {
	if list == nil {
		return nil
	}

	var credits []Credit
	for _, tx := range list.Transactions {
		amount, _ := tx.TrnAmt.Float64()
		if amount <= 0 {
			continue
		}
		credits = append(credits, Credit{
			ID:          string(tx.FiTID),
			Posted:      civil.DateOf(tx.DtPosted.Time),
			Account:     account,
			Description: description(tx),
			Amount:      amount,
		})
	}
	return credits
}

// description prefers the payee, then the name, then the memo.
func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	if name := strings.TrimSpace(string(tx.Name)); name != "" {
		return name
	}
	return strings.TrimSpace(string(tx.Memo))
}

// Filter drops credits already seen by transaction ID and, when pattern is
// not empty, those whose description does not match it.
func Filter(credits []Credit, pattern string) ([]Credit, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		if re, err = common.CompileRegex(pattern); err != nil {
			return nil, fmt.Errorf("%w: --match %q: %v", common.ErrInvalidConfig, pattern, err)
		}
	}

	seen := make(map[string]bool, len(credits))
	var out []Credit

	for _, c := range credits {
		key := c.Account + "/" + c.ID
		if c.ID != "" && seen[key] {
			continue
		}
		seen[key] = true

		if re != nil && !re.MatchString(c.Description) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Total sums the credit amounts.
func Total(credits []Credit) float64 {
	var sum float64
	for _, c := range credits {
		sum += c.Amount
	}
	return sum
}
