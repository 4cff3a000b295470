package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

const indent = "  "

// WriteTranscript writes the plain-text report: every transaction with its
// legs, then the expense summary by category. A local amount reached
// through a rate other than 1 is followed by "@ rate". Account full names are joined
// with sep.
func WriteTranscript(w io.Writer, res *Result, sym Symbols, sep string) error {
	buf := bufio.NewWriter(w)

	heading(buf, "Transactions")
	for _, e := range res.Entries {
		sp := e.Split
		fmt.Fprintf(buf, "%s - %s\n", e.Date.Format(dateLayout), sp.Tx.Description)
		if e.HasForeign {
			fmt.Fprintf(buf, "\t%s %s\n", sp.Other.Account.FullName(sep),
				Money(sym.Nice(sp.Other.Account.Currency()), e.Foreign))
		} else {
			buf.WriteString("\t-\n")
		}
		fmt.Fprintf(buf, "\t%s %s", sp.Account.FullName(sep),
			Money(sym.Nice(sp.Account.Currency()), e.Local))
		if e.Converted() {
			fmt.Fprintf(buf, " @ %s", e.Rate)
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	heading(buf, "Expenses")
	writeSummary(buf, res.Summary, sym)

	return buf.Flush()
}

func heading(w io.StringWriter, title string) {
	w.WriteString(title + "\n")
	w.WriteString(strings.Repeat("=", runewidth.StringWidth(title)) + "\n")
}

type summaryRow struct {
	label          string
	foreign, local string
}

func writeSummary(w io.StringWriter, sum Summary, sym Symbols) {
	var rows []summaryRow
	add := func(label string, foreign, local decimal.Decimal) {
		rows = append(rows, summaryRow{label: label, foreign: Money(sym.Foreign, foreign), local: Money(sym.Local, local)})
	}
	for _, cat := range sum.Categories {
		rows = append(rows, summaryRow{label: indent + cat.Name})
		for _, l := range cat.Lines {
			add(indent+indent+l.Account, l.Foreign, l.Local)
		}
		add(indent+indent+"Total", cat.Foreign, cat.Local)
	}
	add(indent+"Grand Total", sum.Foreign, sum.Local)

	var labelW, foreignW, localW int
	for _, r := range rows {
		labelW = max(labelW, runewidth.StringWidth(r.label))
		foreignW = max(foreignW, runewidth.StringWidth(r.foreign))
		localW = max(localW, runewidth.StringWidth(r.local))
	}
	for _, r := range rows {
		if r.foreign == "" {
			w.WriteString(r.label + "\n")
			continue
		}
		w.WriteString(runewidth.FillRight(r.label, labelW))
		w.WriteString(indent)
		w.WriteString(runewidth.FillLeft(r.foreign, foreignW))
		w.WriteString(indent)
		w.WriteString(runewidth.FillLeft(r.local, localW))
		w.WriteString("\n")
	}
}
