package moneyapp

import (
	"encoding/json"
	"slices"
)

// Timeframe is a chart lookback window.
type Timeframe string

const (
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	Timeframe90d Timeframe = "90d"
	Timeframe1y  Timeframe = "1y"
)

// Timeframes lists all selectable timeframes, shortest first.
var Timeframes = []Timeframe{Timeframe7d, Timeframe30d, Timeframe90d, Timeframe1y}

// ParseTimeframe maps a string onto a Timeframe, defaulting to Timeframe30d
// for values outside the set.
func ParseTimeframe(s string) Timeframe {
	for _, t := range Timeframes {
		if s == string(t) {
			return t
		}
	}
	return Timeframe30d
}

func (t *Timeframe) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTimeframe(s)
	return nil
}

// Days returns the number of days the timeframe spans.
func (t Timeframe) Days() int {
	switch t {
	case Timeframe7d:
		return 7
	case Timeframe90d:
		return 90
	case Timeframe1y:
		return 365
	default:
		return 30
	}
}

// DefaultStrategyBuckets are the buckets a fresh install starts with.
var DefaultStrategyBuckets = []string{"Core Index", "High-Conviction", "Asymmetric", "Cash"}

// Settings is the single user-preference record. It is never deleted, only
// replaced wholesale.
type Settings struct {
	StrategyBuckets  []string    `json:"strategyBuckets"`
	DefaultTimeframe Timeframe   `json:"defaultTimeframe"`
	ChartTimeframes  []Timeframe `json:"chartTimeframes"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		StrategyBuckets:  slices.Clone(DefaultStrategyBuckets),
		DefaultTimeframe: Timeframe30d,
		ChartTimeframes:  slices.Clone(Timeframes),
	}
}

// WithBucket returns a copy of the settings with the bucket appended, keeping
// the existing order and dropping duplicates.
func (s Settings) WithBucket(bucket string) Settings {
	s.StrategyBuckets = slices.Clone(s.StrategyBuckets)
	if bucket == "" || slices.Contains(s.StrategyBuckets, bucket) {
		return s
	}
	s.StrategyBuckets = append(s.StrategyBuckets, bucket)
	return s
}

// WithoutBucket returns a copy of the settings with the bucket removed.
func (s Settings) WithoutBucket(bucket string) Settings {
	buckets := make([]string, 0, len(s.StrategyBuckets))
	for _, b := range s.StrategyBuckets {
		if b != bucket {
			buckets = append(buckets, b)
		}
	}
	s.StrategyBuckets = buckets
	return s
}
