package gnucash

import (
	"time"

	"github.com/shopspring/decimal"
)

// NamespaceCurrency is the commodity namespace GnuCash uses for ISO currencies.
const NamespaceCurrency = "CURRENCY"

// Commodity is a currency or security from the commodities table.
type Commodity struct {
	GUID      string
	Namespace string
	Mnemonic  string
}

// IsCurrency reports whether the commodity is an ISO currency.
func (c *Commodity) IsCurrency() bool {
	return c != nil && c.Namespace == NamespaceCurrency
}

// Account represents a GnuCash account in the chart of accounts.
// The Session that loaded it owns the whole tree.
type Account struct {
	GUID        string
	Name        string
	AccountType string
	Commodity   *Commodity
	Parent      *Account // nil for the book root
	Children    []*Account
}

// Path returns the account's segments from the top-level account down,
// excluding the book root.
func (a *Account) Path() AccountPath {
	var segs []string
	for acc := a; acc != nil && acc.Parent != nil; acc = acc.Parent {
		segs = append(segs, acc.Name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return AccountPath(segs)
}

// FullName returns the account path joined with sep, e.g. "Expenses:Food".
func (a *Account) FullName(sep string) string {
	return a.Path().Join(sep)
}

// Currency returns the account's commodity when it is a currency, otherwise
// the currency of the nearest ancestor. Stock and mutual fund accounts take
// the currency of their parent this way.
func (a *Account) Currency() *Commodity {
	for acc := a; acc != nil; acc = acc.Parent {
		if acc.Commodity.IsCurrency() {
			return acc.Commodity
		}
	}
	return a.Commodity
}

// LookupChild returns the direct child with the given name.
func (a *Account) LookupChild(name string) (*Account, error) {
	for _, c := range a.Children {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, &LookupError{Parent: a.Path(), Name: name}
}

// Transaction represents a GnuCash transaction header.
type Transaction struct {
	GUID        string
	PostDate    time.Time // calendar day, UTC midnight
	Num         string
	Description string
}

// Split represents one leg of a double-entry transaction.
type Split struct {
	GUID     string
	Tx       *Transaction
	Account  *Account
	Value    decimal.Decimal // transaction currency
	Quantity decimal.Decimal // account commodity

	// Other is the opposite leg when the transaction has exactly two
	// splits, nil otherwise.
	Other *Split
}

// SharePrice returns value/quantity, the rate recorded when the split was
// posted. A zero quantity yields 1 for a zero value and 0 otherwise.
func (s *Split) SharePrice() Price {
	if s.Quantity.IsZero() {
		if s.Value.IsZero() {
			return Price{num: decimal.NewFromInt(1), den: decimal.NewFromInt(1)}
		}
		return Price{num: decimal.Zero, den: decimal.NewFromInt(1)}
	}
	return Price{num: s.Value, den: s.Quantity}
}

// Price is a share price kept as the fraction value/quantity. Dividing by it
// never goes through a rounded quotient, so books with large currency ratios
// keep every digit.
type Price struct {
	num, den decimal.Decimal
}

// IsZero reports whether the price is zero.
func (p Price) IsZero() bool {
	return p.num.IsZero()
}

// Round returns the price rounded half away from zero to places.
func (p Price) Round(places int32) decimal.Decimal {
	return p.num.DivRound(p.den, places)
}

// Divide returns d / p.
func (p Price) Divide(d decimal.Decimal) decimal.Decimal {
	return d.Mul(p.den).Div(p.num)
}

// Inverse returns 1 / p rounded half to even to places.
func (p Price) Inverse(places int32) decimal.Decimal {
	return p.den.Div(p.num).RoundBank(places)
}

// ratio converts a GnuCash num/denom pair into a decimal.
func ratio(num, denom int64) decimal.Decimal {
	if denom == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(denom))
}
