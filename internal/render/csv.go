package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/michelgermain/gnucash-expenses/internal/report"
)

// CSV writes every table as a title line, a header and its rows, with an
// empty line between tables.
func CSV(w io.Writer, doc report.Document) error {
	cw := csv.NewWriter(w)
	for i, t := range doc.Tables {
		if i > 0 {
			if err := cw.Write(nil); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
		}
		if err := cw.Write([]string{t.Title}); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		if err := cw.Write(t.Columns); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		if err := cw.WriteAll(rows(t)); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
