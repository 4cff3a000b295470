package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

func TestWalk(t *testing.T) {
	b := newBook()
	assets := b.account("Assets", b.cad)
	checking := b.account("Assets:Checking", b.cad)
	savings := b.account("Assets:Savings", b.cad)
	deep := b.account("Assets:Savings:Term:Deposit", b.cad)
	groceries := b.account("Expenses:Food:Groceries", b.usd)

	tx := b.tx("2025-01-01", "", "Opening")
	own := b.post(tx, assets, "1", "1")
	c1 := b.spend("2025-01-02", "Shop", checking, groceries, "10", "11")
	s1 := b.spend("2025-01-03", "Shop", savings, groceries, "5", "6")
	d1 := b.spend("2025-01-04", "Shop", deep, groceries, "1", "1")

	records, err := Walk(context.Background(), b, assets)
	require.NoError(t, err)

	assert.Equal(t, []string{own.GUID, c1.GUID, s1.GUID, d1.GUID}, guids(records))
	assert.Equal(t, c1.Tx.PostDate, records[1].Date)
	assert.Equal(t, c1.Tx.Num, records[1].Num)
}

func TestWalk_Leaf(t *testing.T) {
	b := newBook()
	checking := b.account("Assets:Checking", b.cad)
	groceries := b.account("Expenses:Food:Groceries", b.usd)
	sp := b.spend("2025-01-02", "Shop", checking, groceries, "10", "11")

	records, err := Walk(context.Background(), b, groceries)
	require.NoError(t, err)
	assert.Equal(t, []string{sp.Other.GUID}, guids(records))
}

type failingSource struct{ err error }

func (f failingSource) SplitsOf(context.Context, *gnucash.Account) ([]*gnucash.Split, error) {
	return nil, f.err
}

func TestWalk_SourceError(t *testing.T) {
	b := newBook()
	checking := b.account("Assets:Checking", b.cad)
	boom := errors.New("disk on fire")

	_, err := Walk(context.Background(), failingSource{err: boom}, checking)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Assets:Checking")
}
