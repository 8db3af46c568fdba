package moneyapp

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// This file holds the pure derivation layer: every function here operates on
// collections passed by the caller, never on the store, and has no side
// effects. The data service and the renderers are both built on top of it.

// UnspecifiedBucket is the group label used for items whose grouping key is
// empty or missing.
const UnspecifiedBucket = "Unspecified"

// ValuedHolding is a holding with its derived market value attached.
type ValuedHolding struct {
	Holding
	MarketValue decimal.Decimal
}

// WithMarketValue attaches the derived market value to a holding.
func WithMarketValue(h Holding) ValuedHolding {
	return ValuedHolding{Holding: h, MarketValue: h.MarketValue()}
}

// ValueHoldings attaches market values to a whole collection, keeping order.
func ValueHoldings(holdings []Holding) []ValuedHolding {
	valued := make([]ValuedHolding, 0, len(holdings))
	for _, h := range holdings {
		valued = append(valued, WithMarketValue(h))
	}
	return valued
}

// ComputeAccountBalances returns the accounts with their derived balance
// attached, preserving input order. Cash accounts keep their manually entered
// balance; every other account gets the sum of its holdings' market values,
// zero when none match.
func ComputeAccountBalances(accounts []Account, holdings []Holding) []Account {
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.AccountType == AccountTypeCash {
			out = append(out, a)
			continue
		}
		var total decimal.Decimal
		for _, h := range holdings {
			if h.AccountID == a.ID {
				total = total.Add(h.MarketValue())
			}
		}
		a.Balance = total
		out = append(out, a)
	}
	return out
}

// CalculateNetWorth sums the derived balances of all accounts. It is zero for
// empty input.
func CalculateNetWorth(accounts []Account, holdings []Holding) decimal.Decimal {
	var total decimal.Decimal
	for _, a := range ComputeAccountBalances(accounts, holdings) {
		total = total.Add(a.Balance)
	}
	return total
}

// CashBalance sums the stored balances of all Cash accounts. Scenario
// projections add it back untouched, since price moves never apply to cash.
func CashBalance(accounts []Account) decimal.Decimal {
	var total decimal.Decimal
	for _, a := range accounts {
		if a.AccountType == AccountTypeCash {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// Key functions for GroupByKey.

// ByAssetClass groups holdings by asset class.
func ByAssetClass(h ValuedHolding) string { return string(h.AssetClass) }

// ByAccountID groups holdings by the raw id of their account, dangling or not.
func ByAccountID(h ValuedHolding) string { return h.AccountID }

// ByStrategyBucket groups holdings by strategy bucket.
func ByStrategyBucket(h ValuedHolding) string { return h.StrategyBucket }

// GroupByKey buckets items by the string returned by key, summing the value
// selected by value (the market value when value is nil). Items whose key is
// empty fall into the UnspecifiedBucket. Bucket order is the insertion order
// of the first-seen bucket, and the grouped total always equals the ungrouped
// sum of the selected values.
func GroupByKey(items []ValuedHolding, key func(ValuedHolding) string, value func(ValuedHolding) decimal.Decimal) *Grouping {
	g := NewGrouping()
	for _, item := range items {
		bucket := key(item)
		if bucket == "" {
			bucket = UnspecifiedBucket
		}
		amount := item.MarketValue
		if value != nil {
			amount = value(item)
		}
		g.Add(bucket, amount)
	}
	return g
}

// WeightedHolding is a valued holding with its share of net worth attached.
type WeightedHolding struct {
	ValuedHolding
	Weight Percent
}

// TopHoldings returns the n largest holdings by market value together with
// their weight in the portfolio. When net worth is zero every weight is zero
// rather than undefined.
func TopHoldings(holdings []Holding, netWorth decimal.Decimal, n int) []WeightedHolding {
	valued := ValueHoldings(holdings)
	sort.SliceStable(valued, func(i, j int) bool {
		return valued[i].MarketValue.GreaterThan(valued[j].MarketValue)
	})
	if n > len(valued) {
		n = len(valued)
	}
	top := make([]WeightedHolding, 0, n)
	for _, v := range valued[:n] {
		top = append(top, WeightedHolding{ValuedHolding: v, Weight: WeightOf(v.MarketValue, netWorth)})
	}
	return top
}

// WeightOf returns value as a percentage of total, and zero when the total is
// zero.
func WeightOf(value, total decimal.Decimal) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(value.Div(total).InexactFloat64() * 100)
}

// HoldingFilter selects a subset of holdings. Zero-value fields do not
// filter.
type HoldingFilter struct {
	AssetClass AssetClass
	Bucket     string
	Search     string // case-insensitive match on ticker or name
}

// FilterHoldings returns the holdings matching the filter, keeping order.
func FilterHoldings(holdings []ValuedHolding, f HoldingFilter) []ValuedHolding {
	term := strings.ToLower(f.Search)
	out := make([]ValuedHolding, 0, len(holdings))
	for _, h := range holdings {
		if f.AssetClass != "" && h.AssetClass != f.AssetClass {
			continue
		}
		if f.Bucket != "" && h.StrategyBucket != f.Bucket {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(h.Ticker), term) &&
			!strings.Contains(strings.ToLower(h.Name), term) {
			continue
		}
		out = append(out, h)
	}
	return out
}
