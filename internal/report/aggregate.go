package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	categorySegment = 1
	displayPlaces   = 2
)

// Line is the running total for one leaf account within a category.
type Line struct {
	Account string
	Local   decimal.Decimal
	Foreign decimal.Decimal

	// Converted is set when at least one entry used a rate other than 1.
	Converted bool
}

// Category groups lines under the second segment of the opposite leg's
// account path.
type Category struct {
	Name    string
	Lines   []Line // sorted by account name
	Local   decimal.Decimal
	Foreign decimal.Decimal
}

// Summary is the aggregated expense view. Totals are kept unrounded; round
// only when displaying.
type Summary struct {
	Categories []Category // sorted by name
	Local      decimal.Decimal
	Foreign    decimal.Decimal
}

// Aggregate groups entries that have an opposite leg by category and leaf
// account. Entries without one have no category and are skipped. An opposite
// leg whose account path has fewer than two segments is an error.
func Aggregate(entries []Entry) (Summary, error) {
	groups := make(map[string]map[string]*Line)
	for _, e := range entries {
		if !e.HasForeign {
			continue
		}
		path := e.Split.Other.Account.Path()
		cat, err := path.Segment(categorySegment)
		if err != nil {
			return Summary{}, fmt.Errorf("categorize %q on %s: %w",
				e.Split.Tx.Description, e.Date.Format(dateLayout), err)
		}
		leaf, err := path.Last()
		if err != nil {
			return Summary{}, fmt.Errorf("categorize %q on %s: %w",
				e.Split.Tx.Description, e.Date.Format(dateLayout), err)
		}

		byAccount, ok := groups[cat]
		if !ok {
			byAccount = make(map[string]*Line)
			groups[cat] = byAccount
		}
		line, ok := byAccount[leaf]
		if !ok {
			line = &Line{Account: leaf}
			byAccount[leaf] = line
		}
		line.Local = line.Local.Add(e.Local)
		line.Foreign = line.Foreign.Add(e.Foreign)
		line.Converted = line.Converted || e.Conversion.Converted()
	}

	var sum Summary
	for _, name := range sortedKeys(groups) {
		cat := Category{Name: name}
		byAccount := groups[name]
		for _, acc := range sortedKeys(byAccount) {
			line := byAccount[acc]
			cat.Lines = append(cat.Lines, *line)
			cat.Local = cat.Local.Add(line.Local)
			cat.Foreign = cat.Foreign.Add(line.Foreign)
		}
		sum.Categories = append(sum.Categories, cat)
		sum.Local = sum.Local.Add(cat.Local)
		sum.Foreign = sum.Foreign.Add(cat.Foreign)
	}
	return sum, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
