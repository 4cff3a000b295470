package report

import (
	"github.com/shopspring/decimal"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

const dateLayout = "2006-01-02"

// NotAvailable stands in for amounts that do not exist.
const NotAvailable = "N/A"

// Symbols are the literal currency prefixes used in output.
type Symbols struct {
	// Foreign and Local prefix the two columns of the expense summary.
	Foreign string
	Local   string

	// Commodities maps a commodity mnemonic to the symbol printed in the
	// transaction transcript. Unmapped commodities print their mnemonic.
	Commodities map[string]string
}

// DefaultSymbols returns the symbols for a CAD book paying in USD.
func DefaultSymbols() Symbols {
	return Symbols{
		Foreign: "US$",
		Local:   "$",
		Commodities: map[string]string{
			"CAD": "$",
			"USD": "US$",
			"EUR": "€",
			"GBP": "£",
			"JPY": "¥",
		},
	}
}

// Nice returns the transcript symbol for a commodity.
func (s Symbols) Nice(c *gnucash.Commodity) string {
	if c == nil {
		return ""
	}
	if sym, ok := s.Commodities[c.Mnemonic]; ok {
		return sym
	}
	return c.Mnemonic
}

// Money formats d rounded half-to-even to two places behind sym.
func Money(sym string, d decimal.Decimal) string {
	return sym + d.StringFixedBank(displayPlaces)
}
