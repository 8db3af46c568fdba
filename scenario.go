package moneyapp

import (
	"github.com/shopspring/decimal"
)

// Scenario is an ephemeral what-if projection of holdings under hypothetical
// prices. It holds two maps for the duration of a session: absolute price
// overrides keyed by ticker, and percentage shifts keyed by asset class.
// Nothing here is ever persisted or written back to the holdings.
type Scenario struct {
	overrides map[string]decimal.Decimal
	shifts    map[AssetClass]decimal.Decimal
}

// NewScenario returns a scenario with no overrides and no shifts: projecting
// through it reproduces plain market values.
func NewScenario() *Scenario {
	return &Scenario{
		overrides: make(map[string]decimal.Decimal),
		shifts:    make(map[AssetClass]decimal.Decimal),
	}
}

// SetOverride pins the scenario price of a ticker to an absolute value.
// An override always wins over the asset-class shift for that holding.
func (s *Scenario) SetOverride(ticker string, price decimal.Decimal) {
	s.overrides[ticker] = price
}

// ClearOverride removes the override for a ticker, reverting it to the
// shift-based projection.
func (s *Scenario) ClearOverride(ticker string) {
	delete(s.overrides, ticker)
}

// ResetOverrides clears all overrides at once.
func (s *Scenario) ResetOverrides() {
	s.overrides = make(map[string]decimal.Decimal)
}

// Override returns the pinned price for a ticker, if any.
func (s *Scenario) Override(ticker string) (decimal.Decimal, bool) {
	v, ok := s.overrides[ticker]
	return v, ok
}

// SetShift applies a percentage shift (e.g. 10 for +10%) to every holding of
// an asset class that has no explicit override.
func (s *Scenario) SetShift(class AssetClass, pct decimal.Decimal) {
	s.shifts[class] = pct
}

// Shift returns the percentage shift for an asset class, zero when unset.
func (s *Scenario) Shift(class AssetClass) decimal.Decimal {
	return s.shifts[class]
}

// QuickSet pins overrides for the named tickers at their current price moved
// by pct percent, rounded to cents. Tickers with no matching holding are
// skipped.
func (s *Scenario) QuickSet(holdings []Holding, tickers []string, pct decimal.Decimal) {
	for _, ticker := range tickers {
		for _, h := range holdings {
			if h.Ticker == ticker {
				s.SetOverride(ticker, shiftPrice(h.Price, pct).Round(2))
				break
			}
		}
	}
}

// ProjectedHolding is a holding with its scenario price and value attached.
type ProjectedHolding struct {
	Holding
	ScenarioPrice decimal.Decimal
	ScenarioValue decimal.Decimal
}

// Project computes the scenario price of a single holding: the override value
// verbatim when one exists for the ticker, otherwise the current price moved
// by the asset-class shift (zero shift when the class has no entry).
func (s *Scenario) Project(h Holding) ProjectedHolding {
	price, ok := s.overrides[h.Ticker]
	if !ok {
		price = shiftPrice(h.Price, s.shifts[h.AssetClass])
	}
	return ProjectedHolding{
		Holding:       h,
		ScenarioPrice: price,
		ScenarioValue: h.Quantity.Mul(price),
	}
}

// ProjectAll projects a whole collection, keeping order.
func (s *Scenario) ProjectAll(holdings []Holding) []ProjectedHolding {
	out := make([]ProjectedHolding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, s.Project(h))
	}
	return out
}

// ProjectNetWorth sums all scenario values and adds the unmodified cash
// total. Cash accounts are never subject to price shifts.
func ProjectNetWorth(projected []ProjectedHolding, cashTotal decimal.Decimal) decimal.Decimal {
	total := cashTotal
	for _, p := range projected {
		total = total.Add(p.ScenarioValue)
	}
	return total
}

// ScenarioAllocation groups scenario values by asset class, in first-seen
// bucket order.
func ScenarioAllocation(projected []ProjectedHolding) *Grouping {
	g := NewGrouping()
	for _, p := range projected {
		bucket := string(p.AssetClass)
		if bucket == "" {
			bucket = UnspecifiedBucket
		}
		g.Add(bucket, p.ScenarioValue)
	}
	return g
}

var hundred = decimal.NewFromInt(100)

// shiftPrice returns price*(1+pct/100).
func shiftPrice(price, pct decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred)))
}
