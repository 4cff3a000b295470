// Package report turns the splits under a set of GnuCash accounts into an
// expense report: it walks the account trees, removes duplicate splits,
// converts each split into local and foreign amounts and groups the result
// by expense category.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

// SplitSource lists the splits posted directly to an account.
// *gnucash.Session implements it.
type SplitSource interface {
	SplitsOf(ctx context.Context, acc *gnucash.Account) ([]*gnucash.Split, error)
}

// Record is one split reached while walking an account tree.
type Record struct {
	Date  time.Time
	Num   string
	Split *gnucash.Split
}

// Walk returns a record for every split posted to root or any of its
// descendants. Each account's own splits come before its children's, and
// children are visited in the order the account lists them.
func Walk(ctx context.Context, src SplitSource, root *gnucash.Account) ([]Record, error) {
	var out []Record
	stack := []*gnucash.Account{root}
	for len(stack) > 0 {
		acc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		splits, err := src.SplitsOf(ctx, acc)
		if err != nil {
			return nil, fmt.Errorf("read splits of %q: %w", acc.Path().String(), err)
		}
		for _, sp := range splits {
			out = append(out, Record{Date: sp.Tx.PostDate, Num: sp.Tx.Num, Split: sp})
		}

		for i := len(acc.Children) - 1; i >= 0; i-- {
			stack = append(stack, acc.Children[i])
		}
	}
	return out, nil
}
