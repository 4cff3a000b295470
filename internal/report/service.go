package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

// Options configures a Service.
type Options struct {
	Accounts  []string // default root accounts
	Separator string
	Symbols   Symbols
	Title     string
}

// Service runs reports against one GnuCash book. Each call opens and closes
// its own ledger session.
type Service struct {
	ledgerPath string
	opts       Options
}

// NewService creates a Service for the book at ledgerPath.
func NewService(ledgerPath string, opts Options) *Service {
	if opts.Separator == "" {
		opts.Separator = gnucash.DefaultSeparator
	}
	if opts.Title == "" {
		opts.Title = "Expense Report"
	}
	return &Service{ledgerPath: ledgerPath, opts: opts}
}

// Report generates the report for accounts, or for the configured default
// accounts when none are given.
func (s *Service) Report(ctx context.Context, accounts []string) (*Result, error) {
	if len(accounts) == 0 {
		accounts = s.opts.Accounts
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts to report on")
	}
	roots := make([]gnucash.AccountPath, 0, len(accounts))
	for _, name := range accounts {
		roots = append(roots, gnucash.ParseRequestPath(name, s.opts.Separator))
	}
	return Generate(ctx, s.ledgerPath, roots)
}

// Transcript renders res as plain text.
func (s *Service) Transcript(res *Result) (string, error) {
	var sb strings.Builder
	if err := WriteTranscript(&sb, res, s.opts.Symbols, s.opts.Separator); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Document lays res out as tables for the document renderers.
func (s *Service) Document(res *Result) Document {
	return BuildDocument(s.opts.Title, res, s.opts.Symbols)
}

// ExpenseReport returns the plain-text report for accounts.
func (s *Service) ExpenseReport(ctx context.Context, accounts []string) (string, error) {
	res, err := s.Report(ctx, accounts)
	if err != nil {
		return "", err
	}
	return s.Transcript(res)
}

// ListAccounts returns every account's full name and currency, one per line.
func (s *Service) ListAccounts(ctx context.Context) (string, error) {
	sess, err := gnucash.Open(ctx, s.ledgerPath)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	accounts := sess.Accounts()
	gnucash.SortAccounts(accounts, s.opts.Separator)

	var sb strings.Builder
	for _, acc := range accounts {
		currency := ""
		if c := acc.Currency(); c != nil {
			currency = c.Mnemonic
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", acc.FullName(s.opts.Separator), acc.AccountType, currency)
	}

	result := sb.String()
	if result == "" {
		return "No accounts found.", nil
	}
	return result, nil
}
