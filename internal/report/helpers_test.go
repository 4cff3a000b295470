package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

// book builds account trees and splits in memory.
type book struct {
	root   *gnucash.Account
	cad    *gnucash.Commodity
	usd    *gnucash.Commodity
	splits map[*gnucash.Account][]*gnucash.Split
	seq    int
}

func newBook() *book {
	cad := &gnucash.Commodity{GUID: "cad", Namespace: gnucash.NamespaceCurrency, Mnemonic: "CAD"}
	return &book{
		root:   &gnucash.Account{GUID: "root", Name: "Root Account", AccountType: "ROOT", Commodity: cad},
		cad:    cad,
		usd:    &gnucash.Commodity{GUID: "usd", Namespace: gnucash.NamespaceCurrency, Mnemonic: "USD"},
		splits: make(map[*gnucash.Account][]*gnucash.Split),
	}
}

func (b *book) SplitsOf(_ context.Context, acc *gnucash.Account) ([]*gnucash.Split, error) {
	return b.splits[acc], nil
}

// account returns the account at path, creating missing segments in c.
func (b *book) account(path string, c *gnucash.Commodity) *gnucash.Account {
	acc := b.root
	for _, seg := range gnucash.ParsePath(path, ":") {
		child, err := acc.LookupChild(seg)
		if err != nil {
			b.seq++
			child = &gnucash.Account{GUID: fmt.Sprintf("acc%d", b.seq), Name: seg, Commodity: c, Parent: acc}
			acc.Children = append(acc.Children, child)
		}
		acc = child
	}
	return acc
}

func (b *book) tx(date, num, desc string) *gnucash.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	b.seq++
	return &gnucash.Transaction{GUID: fmt.Sprintf("tx%d", b.seq), PostDate: d, Num: num, Description: desc}
}

// post adds a split of value (transaction currency) and qty (account
// commodity) to acc.
func (b *book) post(tx *gnucash.Transaction, acc *gnucash.Account, value, qty string) *gnucash.Split {
	b.seq++
	sp := &gnucash.Split{
		GUID:     fmt.Sprintf("sp%03d", b.seq),
		Tx:       tx,
		Account:  acc,
		Value:    decimal.RequireFromString(value),
		Quantity: decimal.RequireFromString(qty),
	}
	b.splits[acc] = append(b.splits[acc], sp)
	return sp
}

// pair links two splits as the legs of one two-split transaction.
func pair(a, c *gnucash.Split) {
	a.Other = c
	c.Other = a
}

// spend records a two-leg purchase: local leaves from, foreign lands on to.
func (b *book) spend(date, desc string, from, to *gnucash.Account, local, foreign string) *gnucash.Split {
	tx := b.tx(date, "", desc)
	f := decimal.RequireFromString(foreign)
	l := decimal.RequireFromString(local)
	out := b.post(tx, from, f.Neg().String(), l.Neg().String())
	in := b.post(tx, to, f.String(), f.String())
	pair(out, in)
	return out
}

func guids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Split.GUID)
	}
	return out
}
