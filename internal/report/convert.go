package report

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
)

const (
	localPlaces = 3
	ratePlaces  = 6
)

// ErrZeroSharePrice is returned for splits whose recorded price is zero.
var ErrZeroSharePrice = errors.New("zero share price")

var one = decimal.NewFromInt(1)

// Conversion holds a split's amounts in the walked account's currency and,
// when the split has an opposite leg, in that leg's currency.
type Conversion struct {
	Local      decimal.Decimal
	Foreign    decimal.Decimal // zero unless HasForeign
	HasForeign bool
	Rate       decimal.Decimal // 1 when there is no opposite leg
}

// Converted reports whether the foreign amount went through a rate other
// than 1.
func (c Conversion) Converted() bool {
	return c.HasForeign && !c.Rate.Equal(one)
}

// Convert derives the local amount as -(value / share price), rounded to
// three places with banker's rounding, and takes the foreign amount from the
// opposite leg's value. The division uses the exact recorded price.
func Convert(sp *gnucash.Split) (Conversion, error) {
	price := sp.SharePrice()
	if price.IsZero() {
		return Conversion{}, fmt.Errorf("split %s of %q on %s: %w",
			sp.GUID, sp.Tx.Description, sp.Tx.PostDate.Format(dateLayout), ErrZeroSharePrice)
	}

	c := Conversion{
		Local: price.Divide(sp.Value).RoundBank(localPlaces).Neg(),
		Rate:  one,
	}
	if sp.Other != nil {
		c.Foreign = sp.Other.Value
		c.HasForeign = true
		c.Rate = price.Inverse(ratePlaces)
	}
	return c, nil
}

// Entry is a record with its converted amounts.
type Entry struct {
	Record
	Conversion
}

// ConvertAll converts every record, stopping at the first failure.
func ConvertAll(records []Record) ([]Entry, error) {
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		c, err := Convert(r.Split)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Record: r, Conversion: c})
	}
	return out, nil
}
