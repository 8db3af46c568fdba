package moneyapp

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed whenever a record carries no currency of its own.
const DefaultCurrency = "USD"

// Money pairs an amount with its currency for display purposes. Amounts are
// stored and computed as plain decimals everywhere else; Money only exists at
// the rendering boundary.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M wraps an amount in a currency. An empty currency falls back to
// DefaultCurrency.
func M(value decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{value: value, cur: currency}
}

// currency returns a never-nil currency descriptor.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's locale rules, e.g. "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is String with an explicit leading plus on gains. Losses keep
// the minus sign the formatter already emits.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string   { return m.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }
