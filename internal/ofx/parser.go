// Package ofx turns OFX/QFX bank and credit card statements into expense
// candidates that can be reviewed and imported.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Candidate is a statement debit that can become an expense.
type Candidate struct {
	FITID       string
	Date        string // YYYY-MM-DD
	Note        string // cleaned merchant name
	Account     string
	AmountCents int64
}

// NewExpense converts the candidate into an expense for categoryID. Notes
// longer than an expense allows are truncated.
func (c Candidate) NewExpense(categoryID string) model.NewExpense {
	note := c.Note
	if runes := []rune(note); len(runes) > model.MaxNoteLength {
		note = string(runes[:model.MaxNoteLength])
	}
	in := model.NewExpense{
		Date:        c.Date,
		AmountCents: c.AmountCents,
		CategoryID:  categoryID,
	}
	if note != "" {
		in.Note = &note
	}
	return in
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of a bare opening tag
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile reads a statement and returns its debits as candidates, in
// statement order. Credits, refunds and zero amounts are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Candidate, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		got, n := p.convertTransactions(ctx, stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
		candidates = append(candidates, got...)
		skipped += n
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		got, n := p.convertTransactions(ctx, stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
		candidates = append(candidates, got...)
		skipped += n
	}

	slog.Info("Parsed OFX file",
		"candidates", len(candidates),
		"skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return candidates, nil
}

func (p *Parser) convertTransactions(ctx context.Context, txns []ofxgo.Transaction, account string) ([]Candidate, int) {
	var out []Candidate
	skipped := 0
	for _, tx := range txns {
		if ctx.Err() != nil {
			break
		}
		c, ok, err := p.convertTransaction(tx, account)
		if err != nil {
			slog.Warn("Failed to convert OFX transaction", "fitid", string(tx.FiTID), "error", err)
			skipped++
			continue
		}
		if !ok {
			skipped++
			continue
		}
		out = append(out, c)
	}
	return out, skipped
}

// convertTransaction reports ok=false for anything that is not money out.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, account string) (Candidate, bool, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		return Candidate{}, false, fmt.Errorf("invalid amount: %w", err)
	}

	// OFX signs debits negative
	if !amount.IsNegative() {
		return Candidate{}, false, nil
	}
	cents := amount.Neg().Shift(2).IntPart()

	return Candidate{
		FITID:       string(tx.FiTID),
		Date:        tx.DtPosted.Time.Format(dates.ISOLayout),
		Note:        p.extractMerchantName(tx),
		Account:     account,
		AmountCents: cents,
	}, true, nil
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " posting date
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// FilterExisting drops candidates that repeat a FITID within the batch or
// match an existing expense on date, amount and note.
func FilterExisting(candidates []Candidate, existing []model.Expense) []Candidate {
	type key struct {
		date  string
		note  string
		cents int64
	}
	known := make(map[key]int)
	for _, e := range existing {
		known[key{e.Date, e.NoteText(), e.AmountCents}]++
	}

	seenFITID := make(map[string]struct{})
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.FITID != "" {
			if _, dup := seenFITID[c.FITID]; dup {
				continue
			}
			seenFITID[c.FITID] = struct{}{}
		}
		k := key{c.Date, c.Note, c.AmountCents}
		if known[k] > 0 {
			known[k]--
			continue
		}
		out = append(out, c)
	}
	return out
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID))
		}
	}

	return accounts, nil
}
