package moneyapp

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Grouping is an ordered mapping from group label to a summed amount.
// Labels keep the insertion order of the first-seen bucket, which the default
// json package cannot provide for maps, so marshaling is done field by field.
type Grouping struct {
	keys   []string
	totals map[string]decimal.Decimal
}

// NewGrouping returns an empty grouping.
func NewGrouping() *Grouping {
	return &Grouping{totals: make(map[string]decimal.Decimal)}
}

// Add sums v into the bucket for key, creating the bucket on first use.
func (g *Grouping) Add(key string, v decimal.Decimal) {
	if g.totals == nil {
		g.totals = make(map[string]decimal.Decimal)
	}
	if _, ok := g.totals[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.totals[key] = g.totals[key].Add(v)
}

// Get returns the summed amount for key, and whether the bucket exists.
func (g *Grouping) Get(key string) (decimal.Decimal, bool) {
	if g == nil || g.totals == nil {
		return decimal.Decimal{}, false
	}
	v, ok := g.totals[key]
	return v, ok
}

// Keys returns the bucket labels in insertion order.
func (g *Grouping) Keys() []string {
	if g == nil {
		return nil
	}
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Len returns the number of buckets.
func (g *Grouping) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Total returns the sum over all buckets.
func (g *Grouping) Total() decimal.Decimal {
	var total decimal.Decimal
	if g == nil {
		return total
	}
	for _, k := range g.keys {
		total = total.Add(g.totals[k])
	}
	return total
}

// Equal reports whether two groupings hold the same buckets, amounts and order.
func (g *Grouping) Equal(o *Grouping) bool {
	if g.Len() != o.Len() {
		return false
	}
	for i, k := range g.keys {
		if o.keys[i] != k {
			return false
		}
		if !g.totals[k].Equal(o.totals[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the grouping as a single JSON object whose property
// order is the bucket insertion order.
func (g *Grouping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := g.totals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the property order of the input.
func (g *Grouping) UnmarshalJSON(b []byte) error {
	g.keys = nil
	g.totals = make(map[string]decimal.Decimal)

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("grouping: expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("grouping: expected string key, got %v", tok)
		}
		var v decimal.Decimal
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("grouping: invalid amount for %q: %w", key, err)
		}
		g.Add(key, v)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
