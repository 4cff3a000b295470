package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/michelgermain/gnucash-expenses/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = cellStyle.Bold(true)
)

// Tables writes doc as bordered terminal tables. A positive width caps the
// table width; zero leaves it unbounded.
func Tables(w io.Writer, doc report.Document, width int) error {
	if doc.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", titleStyle.Render(doc.Title)); err != nil {
			return err
		}
	}
	for _, t := range doc.Tables {
		out := terminalTable(t, 0).Render()
		if width > 0 && lipgloss.Width(out) > width {
			out = terminalTable(t, width).Render()
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", titleStyle.Render(t.Title), out); err != nil {
			return err
		}
	}
	return nil
}

func terminalTable(t report.Table, width int) *table.Table {
	body := rows(t)
	footer := -1
	if len(t.Footer) > 0 {
		footer = len(body) - 1
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(t.Columns...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch row {
			case table.HeaderRow:
				return headerStyle
			case footer:
				s = footerStyle
			default:
				s = cellStyle
			}
			if col >= t.Amounts {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl
}
