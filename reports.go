package moneyapp

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report structures are plain data computed by the selectors, ready for a
// renderer. They carry no store access and no formatting.

// ChangeRow is the net-worth change against the newest snapshot at least
// Days old. OK is false when no snapshot is old enough.
type ChangeRow struct {
	Days int
	Diff decimal.Decimal
	OK   bool
}

// AllocationRow is one bucket of an allocation breakdown with its resolved
// display label.
type AllocationRow struct {
	Label  string
	Value  decimal.Decimal
	Weight Percent
}

// SummaryReport is the data behind the summary (dashboard) view.
type SummaryReport struct {
	Time         time.Time
	NetWorth     decimal.Decimal
	Changes      []ChangeRow
	ByAssetClass []AllocationRow
	ByAccount    []AllocationRow
	TopHoldings  []WeightedHolding
	Series       []SnapshotPoint
}

// NewSummaryReport derives the summary view from the current collections.
// Change rows cover 1, 7 and 30 days.
func NewSummaryReport(accounts []Account, holdings []Holding, snapshots []Snapshot, now time.Time) *SummaryReport {
	netWorth := CalculateNetWorth(accounts, holdings)
	valued := ValueHoldings(holdings)

	r := &SummaryReport{
		Time:        now,
		NetWorth:    netWorth,
		TopHoldings: TopHoldings(holdings, netWorth, 5),
		Series:      NetWorthSeries(snapshots),
	}
	for _, days := range []int{1, 7, 30} {
		diff, ok := ChangeSince(snapshots, netWorth, days, now)
		r.Changes = append(r.Changes, ChangeRow{Days: days, Diff: diff, OK: ok})
	}

	holdingsTotal := GroupByKey(valued, ByAssetClass, nil).Total()
	r.ByAssetClass = allocationRows(GroupByKey(valued, ByAssetClass, nil), nil, holdingsTotal)
	r.ByAccount = allocationRows(GroupByKey(valued, ByAccountID, nil), AccountNameIndex(accounts), holdingsTotal)
	return r
}

// allocationRows flattens a grouping into rows, resolving labels through the
// optional name index. A key missing from the index stays as-is: an
// unattributed group renders under its raw id instead of failing.
func allocationRows(g *Grouping, names map[string]string, total decimal.Decimal) []AllocationRow {
	rows := make([]AllocationRow, 0, g.Len())
	for _, key := range g.Keys() {
		v, _ := g.Get(key)
		label := key
		if name, ok := names[key]; ok {
			label = name
		}
		rows = append(rows, AllocationRow{Label: label, Value: v, Weight: WeightOf(v, total)})
	}
	return rows
}

// AccountsReport is the data behind the accounts view.
type AccountsReport struct {
	Accounts []Account // balances derived
	Total    decimal.Decimal
}

// NewAccountsReport derives every account balance and the overall total.
func NewAccountsReport(accounts []Account, holdings []Holding) *AccountsReport {
	derived := ComputeAccountBalances(accounts, holdings)
	var total decimal.Decimal
	for _, a := range derived {
		total = total.Add(a.Balance)
	}
	return &AccountsReport{Accounts: derived, Total: total}
}

// HoldingsReport is the data behind the holdings view.
type HoldingsReport struct {
	Holdings []WeightedHolding
	Filter   HoldingFilter
	NetWorth decimal.Decimal
	Total    decimal.Decimal // market value of the listed holdings
}

// NewHoldingsReport values, filters and weights the holdings.
func NewHoldingsReport(accounts []Account, holdings []Holding, filter HoldingFilter) *HoldingsReport {
	netWorth := CalculateNetWorth(accounts, holdings)
	filtered := FilterHoldings(ValueHoldings(holdings), filter)

	r := &HoldingsReport{Filter: filter, NetWorth: netWorth}
	for _, v := range filtered {
		r.Holdings = append(r.Holdings, WeightedHolding{ValuedHolding: v, Weight: WeightOf(v.MarketValue, netWorth)})
		r.Total = r.Total.Add(v.MarketValue)
	}
	return r
}

// ScenarioReport is the data behind the scenario view.
type ScenarioReport struct {
	NetWorth         decimal.Decimal // current
	ScenarioNetWorth decimal.Decimal
	Delta            decimal.Decimal
	CashTotal        decimal.Decimal
	Holdings         []ProjectedHolding
	Allocation       []AllocationRow
}

// NewScenarioReport projects all holdings through the scenario and compares
// the hypothetical net worth with the current one.
func NewScenarioReport(accounts []Account, holdings []Holding, sc *Scenario) *ScenarioReport {
	netWorth := CalculateNetWorth(accounts, holdings)
	cash := CashBalance(accounts)
	projected := sc.ProjectAll(holdings)
	scenarioNetWorth := ProjectNetWorth(projected, cash)

	allocation := ScenarioAllocation(projected)
	return &ScenarioReport{
		NetWorth:         netWorth,
		ScenarioNetWorth: scenarioNetWorth,
		Delta:            scenarioNetWorth.Sub(netWorth),
		CashTotal:        cash,
		Holdings:         projected,
		Allocation:       allocationRows(allocation, nil, allocation.Total()),
	}
}
