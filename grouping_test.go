package moneyapp

import (
	"testing"
)

func TestGroupingInsertionOrder(t *testing.T) {
	g := NewGrouping()
	g.Add("Stock", d(100))
	g.Add("Crypto", d(50))
	g.Add("Stock", d(25))
	g.Add("Cash", d(10))

	want := []string{"Stock", "Crypto", "Cash"}
	got := g.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if v, _ := g.Get("Stock"); !v.Equal(d(125)) {
		t.Errorf("Stock = %v, want 125", v)
	}
	if !g.Total().Equal(d(185)) {
		t.Errorf("Total() = %v, want 185", g.Total())
	}
}

func TestGroupingJSONRoundTrip(t *testing.T) {
	g := NewGrouping()
	g.Add("Stock", d(2100))
	g.Add("Crypto", d(40000))
	g.Add(UnspecifiedBucket, d(100))

	data, err := g.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var back Grouping
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if !g.Equal(&back) {
		t.Errorf("round trip mismatch: %s -> %v", data, back.Keys())
	}

	// property order is the insertion order
	wantPrefix := `{"Stock":`
	if string(data[:len(wantPrefix)]) != wantPrefix {
		t.Errorf("marshaled object does not start with first bucket: %s", data)
	}
}

func TestGroupingUnmarshalRejectsNonObject(t *testing.T) {
	var g Grouping
	if err := g.UnmarshalJSON([]byte(`[1,2]`)); err == nil {
		t.Error("expected error for non-object input")
	}
}

func TestGroupingNil(t *testing.T) {
	var g *Grouping
	if g.Len() != 0 {
		t.Errorf("nil grouping Len() = %d", g.Len())
	}
	if !g.Total().IsZero() {
		t.Errorf("nil grouping Total() = %v", g.Total())
	}
	if _, ok := g.Get("x"); ok {
		t.Error("nil grouping reported a bucket")
	}
}
