package service

import (
	"testing"
)

func TestStaleGeneration(t *testing.T) {
	cases := []struct {
		name    string
		gen     int64
		current int64
		stale   bool
	}{
		{"current matches", 3, 3, false},
		{"superseded by newer query", 3, 5, true},
		{"counter reset after expiry", 3, 1, true},
	}

	for _, c := range cases {
		if got := staleGeneration(c.gen, c.current); got != c.stale {
			t.Errorf("%s: staleGeneration(%d, %d) = %v, want %v", c.name, c.gen, c.current, got, c.stale)
		}
	}
}
