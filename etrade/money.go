package etrade

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary amount paired with its currency, for display.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from an exact decimal amount in major units.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

func (m Money) currency() money.Currency {
	// the Money constructor is the one place that never returns a nil currency
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's own grapheme, fraction
// and thousand separators.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string      { return m.cur }
func (m Money) IsZero() bool          { return m.value.IsZero() }
func (m Money) IsNegative() bool      { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) && m.cur == n.cur }
