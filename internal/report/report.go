package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

// Result is a finished report: the ordered, converted transaction list and
// the expense summary built from it.
type Result struct {
	Entries []Entry
	Summary Summary
}

// Generate reads every split under roots from the book at ledgerPath and
// builds the report. The ledger is closed before conversion starts.
func Generate(ctx context.Context, ledgerPath string, roots []gnucash.AccountPath) (*Result, error) {
	records, err := Collect(ctx, ledgerPath, roots)
	if err != nil {
		return nil, err
	}
	return Build(records)
}

// Collect opens the book, walks each root in turn and closes the book again,
// also when a lookup or query fails.
func Collect(ctx context.Context, ledgerPath string, roots []gnucash.AccountPath) (_ []Record, err error) {
	slog.InfoContext(ctx, fmt.Sprintf("Reading data from %q ...", ledgerPath))

	sess, err := gnucash.Open(ctx, ledgerPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close ledger: %w", cerr)
		}
	}()

	var records []Record
	for _, path := range roots {
		acc, err := sess.Lookup(path)
		if err != nil {
			return nil, fmt.Errorf("resolve account %q: %w", path.String(), err)
		}
		recs, err := Walk(ctx, sess, acc)
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "walked account", "account", path.String(), "splits", len(recs))
		records = append(records, recs...)
	}
	return records, nil
}

// Build deduplicates and orders records, converts them and aggregates the
// expense summary.
func Build(records []Record) (*Result, error) {
	entries, err := ConvertAll(Dedupe(records))
	if err != nil {
		return nil, err
	}
	sum, err := Aggregate(entries)
	if err != nil {
		return nil, err
	}
	return &Result{Entries: entries, Summary: sum}, nil
}
