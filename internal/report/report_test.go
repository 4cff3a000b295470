package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
	"github.com/michelgermain/gnucash-expenses/internal/gnucash/gnucashtest"
)

func roots(names ...string) []gnucash.AccountPath {
	out := make([]gnucash.AccountPath, 0, len(names))
	for _, n := range names {
		out = append(out, gnucash.ParsePath(n, ":"))
	}
	return out
}

func TestGenerate(t *testing.T) {
	path := gnucashtest.File(t)

	res, err := Generate(context.Background(), path, roots("Assets", "Liabilities"))
	require.NoError(t, err)

	var got []string
	for _, e := range res.Entries {
		got = append(got, e.Date.Format(dateLayout)+" "+e.Split.Tx.Description+" "+e.Local.StringFixedBank(2))
	}
	assert.Equal(t, []string{
		"2025-01-05 Split dinner 30.00",
		"2025-01-10 Supermarket 10.00",
		"2025-01-12 Hotel stay 135.00",
		"2025-01-12 Market 5.50",
		"2025-02-02 Bank fee 20.00",
	}, got)

	sum := res.Summary
	require.Len(t, sum.Categories, 2)
	assert.Equal(t, "Food", sum.Categories[0].Name)
	assert.Equal(t, "Groceries", sum.Categories[0].Lines[0].Account)
	assert.Equal(t, "15.50", sum.Categories[0].Local.StringFixedBank(2))
	assert.Equal(t, "17.00", sum.Categories[0].Foreign.StringFixedBank(2))
	assert.Equal(t, "Travel", sum.Categories[1].Name)
	assert.Equal(t, "135.00", sum.Categories[1].Local.StringFixedBank(2))
	assert.Equal(t, "150.50", sum.Local.StringFixedBank(2))
	assert.Equal(t, "117.00", sum.Foreign.StringFixedBank(2))
}

func TestGenerate_OverlappingRootsCountOnce(t *testing.T) {
	path := gnucashtest.File(t)
	ctx := context.Background()

	whole, err := Generate(ctx, path, roots("Assets"))
	require.NoError(t, err)
	overlap, err := Generate(ctx, path, roots("Assets", "Assets:Checking"))
	require.NoError(t, err)

	assert.Equal(t, guids(recordsOf(whole)), guids(recordsOf(overlap)))
	assert.True(t, whole.Summary.Local.Equal(overlap.Summary.Local))
}

func recordsOf(res *Result) []Record {
	out := make([]Record, 0, len(res.Entries))
	for _, e := range res.Entries {
		out = append(out, e.Record)
	}
	return out
}

func TestGenerate_UnknownAccount(t *testing.T) {
	path := gnucashtest.File(t)

	_, err := Generate(context.Background(), path, roots("Assets", "Bank"))
	var lookup *gnucash.LookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, "Bank", lookup.Name)
	assert.Contains(t, err.Error(), `"Bank"`)
}

func TestGenerate_CategoryPathTooShort(t *testing.T) {
	path := gnucashtest.File(t, `
		INSERT INTO transactions VALUES ('tx9', 'cad', '', '2025-03-01 10:59:00', '2025-03-01 10:59:00', 'Service charge');
		INSERT INTO splits VALUES ('sp9a', 'tx9', 'checking', '', -250, 100, -250, 100);
		INSERT INTO splits VALUES ('sp9b', 'tx9', 'fees',     '',  250, 100,  250, 100);
	`)

	_, err := Generate(context.Background(), path, roots("Assets"))
	var tooShort *gnucash.PathTooShortError
	require.ErrorAs(t, err, &tooShort)
	assert.Contains(t, err.Error(), "Service charge")
}

func TestGenerate_ZeroSharePrice(t *testing.T) {
	path := gnucashtest.File(t, `
		INSERT INTO transactions VALUES ('tx9', 'usd', '', '2025-03-01 10:59:00', '2025-03-01 10:59:00', 'Broken');
		INSERT INTO splits VALUES ('sp9a', 'tx9', 'checking',  '', -500, 100, 0, 100);
		INSERT INTO splits VALUES ('sp9b', 'tx9', 'groceries', '',  500, 100, 500, 100);
	`)

	_, err := Generate(context.Background(), path, roots("Assets"))
	assert.ErrorIs(t, err, ErrZeroSharePrice)
	assert.Contains(t, err.Error(), "sp9a")
}

func TestGenerate_MissingBook(t *testing.T) {
	_, err := Generate(context.Background(), t.TempDir()+"/missing.gnucash", roots("Assets"))
	var openErr *gnucash.OpenError
	require.ErrorAs(t, err, &openErr)
}
