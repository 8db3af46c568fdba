package moneyapp

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is an immutable, timestamped capture of net worth and allocation
// breakdowns. Snapshots are only ever appended or bulk-replaced via import,
// never edited.
//
// The group breakdowns cover holdings only: Cash-account balances contribute
// to NetWorth but not to ByAssetClass or ByStrategy, so grouped sums are
// generally below NetWorth by the cash total. That gap is accepted behavior,
// not a reconciliation bug.
type Snapshot struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	NetWorth  decimal.Decimal `json:"netWorth"`
	// ByAccountType is keyed by the raw account id of each holding, letting
	// renderers resolve names (or show the id when the reference dangles).
	ByAssetClass  *Grouping `json:"byAssetClass"`
	ByAccountType *Grouping `json:"byAccountType"`
	ByStrategy    *Grouping `json:"byStrategy"`
}

// BuildSnapshotAt captures net worth and the three allocation groupings from
// the given collections as of time t. It does not assign an id, mutate, or
// persist anything; SaveSnapshot does the rest.
func BuildSnapshotAt(accounts []Account, holdings []Holding, t time.Time) Snapshot {
	valued := ValueHoldings(holdings)
	return Snapshot{
		Timestamp:     t,
		NetWorth:      CalculateNetWorth(accounts, holdings),
		ByAssetClass:  GroupByKey(valued, ByAssetClass, nil),
		ByAccountType: GroupByKey(valued, ByAccountID, nil),
		ByStrategy:    GroupByKey(valued, ByStrategyBucket, nil),
	}
}

// BuildSnapshot is BuildSnapshotAt at the current instant.
func BuildSnapshot(accounts []Account, holdings []Holding) Snapshot {
	return BuildSnapshotAt(accounts, holdings, time.Now().UTC())
}

// SnapshotPoint is one point of a net-worth-over-time series.
type SnapshotPoint struct {
	Timestamp time.Time
	NetWorth  decimal.Decimal
}

// NetWorthSeries returns the snapshots as a series sorted by timestamp,
// oldest first. The input slice is not modified.
func NetWorthSeries(snapshots []Snapshot) []SnapshotPoint {
	points := make([]SnapshotPoint, 0, len(snapshots))
	for _, s := range snapshots {
		points = append(points, SnapshotPoint{Timestamp: s.Timestamp, NetWorth: s.NetWorth})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points
}

// ChangeSince compares the current net worth against the most recent snapshot
// that is at least the given number of days old at time now. It returns false
// when no snapshot is old enough.
func ChangeSince(snapshots []Snapshot, netWorth decimal.Decimal, days int, now time.Time) (decimal.Decimal, bool) {
	minAge := time.Duration(days) * 24 * time.Hour
	var best *Snapshot
	for i := range snapshots {
		s := &snapshots[i]
		if now.Sub(s.Timestamp) < minAge {
			continue
		}
		if best == nil || s.Timestamp.After(best.Timestamp) {
			best = s
		}
	}
	if best == nil {
		return decimal.Decimal{}, false
	}
	return netWorth.Sub(best.NetWorth), true
}
