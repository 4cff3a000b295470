package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash/gnucashtest"
)

func setupTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Symbols.Foreign == "" {
		opts.Symbols = DefaultSymbols()
	}
	return NewService(gnucashtest.File(t), opts)
}

func TestService_ExpenseReport(t *testing.T) {
	svc := setupTestService(t, Options{})

	got, err := svc.ExpenseReport(context.Background(), []string{"Assets", "Liabilities"})
	require.NoError(t, err)
	assert.Equal(t, wantTranscript, got)
}

func TestService_DefaultAccounts(t *testing.T) {
	svc := setupTestService(t, Options{Accounts: []string{"Liabilities"}})

	res, err := svc.Report(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Hotel stay", res.Entries[0].Split.Tx.Description)
}

func TestService_NoAccounts(t *testing.T) {
	svc := setupTestService(t, Options{})

	_, err := svc.Report(context.Background(), nil)
	assert.EqualError(t, err, "no accounts to report on")
}

func TestService_Separator(t *testing.T) {
	svc := setupTestService(t, Options{Separator: "/"})

	res, err := svc.Report(context.Background(), []string{"Assets/Checking"})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 4)

	out, err := svc.Transcript(res)
	require.NoError(t, err)
	assert.Contains(t, out, "\tExpenses/Food/Groceries US$11.00\n")
}

func TestService_DottedAccountPaths(t *testing.T) {
	svc := setupTestService(t, Options{})
	ctx := context.Background()

	dotted, err := svc.Report(ctx, []string{"Assets.Checking"})
	require.NoError(t, err)
	colon, err := svc.Report(ctx, []string{"Assets:Checking"})
	require.NoError(t, err)
	assert.Equal(t, guids(recordsOf(colon)), guids(recordsOf(dotted)))
	assert.Len(t, dotted.Entries, 4)
}

func TestService_DocumentTitle(t *testing.T) {
	svc := setupTestService(t, Options{})
	res, err := svc.Report(context.Background(), []string{"Liabilities"})
	require.NoError(t, err)
	assert.Equal(t, "Expense Report", svc.Document(res).Title)
}

func TestService_ListAccounts(t *testing.T) {
	svc := setupTestService(t, Options{})

	got, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Equal(t, "Assets\tASSET\tCAD", lines[0])
	assert.Contains(t, lines, "Assets:Brokerage:Apple\tSTOCK\tCAD")
	assert.Contains(t, lines, "Expenses:Food:Groceries\tEXPENSE\tUSD")
	assert.Equal(t, "Liabilities:Visa\tCREDIT\tCAD", lines[len(lines)-1])
	assert.NotContains(t, got, "Template Root")
	assert.NotContains(t, got, "Rent template")
	assert.Len(t, lines, 13)
}
