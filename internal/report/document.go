package report

import "github.com/shopspring/decimal"

// Table is one titled grid of the report document. Footer, when present,
// is the totals row.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
	Footer  []string

	// Amounts is the index of the first money column; columns from there
	// on hold amounts.
	Amounts int
}

// Document is the renderer-independent form of a report: a transactions
// table, one table per expense category and a closing summary table.
type Document struct {
	Title  string
	Tables []Table
}

// BuildDocument lays out res as tables. Positive local amounts left the
// walked accounts and are listed as credits; negative ones are debits.
// Balance is the running sum of local amounts.
func BuildDocument(title string, res *Result, sym Symbols) Document {
	doc := Document{Title: title}
	doc.Tables = append(doc.Tables, transactionsTable(res.Entries, sym))
	for _, cat := range res.Summary.Categories {
		doc.Tables = append(doc.Tables, categoryTable(cat, sym))
	}
	doc.Tables = append(doc.Tables, summaryTable(res.Summary, sym))
	return doc
}

func transactionsTable(entries []Entry, sym Symbols) Table {
	t := Table{
		Title:   "Transactions",
		Columns: []string{"Date", "Description", "Credit", "Debit", "Balance"},
		Amounts: 2,
	}
	var credits, debits, balance decimal.Decimal
	for _, e := range entries {
		var credit, debit string
		switch e.Local.Sign() {
		case 1:
			credit = Money(sym.Local, e.Local)
			credits = credits.Add(e.Local)
		case -1:
			debit = Money(sym.Local, e.Local.Neg())
			debits = debits.Add(e.Local.Neg())
		}
		balance = balance.Add(e.Local)
		t.Rows = append(t.Rows, []string{
			e.Date.Format(dateLayout),
			e.Split.Tx.Description,
			credit,
			debit,
			Money(sym.Local, balance),
		})
	}
	t.Footer = []string{"", "Total", Money(sym.Local, credits), Money(sym.Local, debits), Money(sym.Local, balance)}
	return t
}

func categoryTable(cat Category, sym Symbols) Table {
	t := Table{
		Title:   cat.Name,
		Columns: []string{"Account", "Foreign Amount", "Local Amount"},
		Amounts: 1,
	}
	for _, l := range cat.Lines {
		foreign := NotAvailable
		if l.Converted {
			foreign = Money(sym.Foreign, l.Foreign)
		}
		t.Rows = append(t.Rows, []string{l.Account, foreign, Money(sym.Local, l.Local)})
	}
	t.Footer = []string{"Total", Money(sym.Foreign, cat.Foreign), Money(sym.Local, cat.Local)}
	return t
}

func summaryTable(sum Summary, sym Symbols) Table {
	t := Table{
		Title:   "Expenses",
		Columns: []string{"Category", "Foreign Amount", "Local Amount"},
		Amounts: 1,
	}
	for _, cat := range sum.Categories {
		t.Rows = append(t.Rows, []string{cat.Name, Money(sym.Foreign, cat.Foreign), Money(sym.Local, cat.Local)})
	}
	t.Footer = []string{"Grand Total", Money(sym.Foreign, sum.Foreign), Money(sym.Local, sum.Local)}
	return t
}
