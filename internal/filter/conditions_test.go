package filter

import (
	"testing"
)

func TestAvailableRemovesSelectedTypes(t *testing.T) {
	all := Catalog()

	got := Available(nil)
	if len(got) != len(all) {
		t.Fatalf("empty selection pool = %d, want %d", len(got), len(all))
	}

	got = Available([]Condition{
		{Type: TypeCarModel, Value: "轿车"},
		{Type: TypeLastFollowTime, Value: "today"},
	})
	if len(got) != len(all)-2 {
		t.Fatalf("pool = %d, want %d", len(got), len(all)-2)
	}
	for _, c := range got {
		if c.Type == TypeCarModel || c.Type == TypeLastFollowTime {
			t.Fatalf("selected type %s still in pool", c.Type)
		}
	}
}

func TestAvailableAllSelected(t *testing.T) {
	selected := Catalog()
	if got := Available(selected); len(got) != 0 {
		t.Fatalf("full selection pool = %d, want 0", len(got))
	}
}

func TestResetCounts(t *testing.T) {
	conditions := []Condition{
		{
			Type: TypeCustomerLevel,
			Options: []Option{
				{Value: "H级", Label: "H级", Count: 12},
				{Value: "A级", Label: "A级", Count: 7},
			},
		},
	}

	got := ResetCounts(conditions)
	for _, opt := range got[0].Options {
		if opt.Count != 0 {
			t.Fatalf("option %s count = %d after reset", opt.Value, opt.Count)
		}
	}
}

func TestParseCustomRange(t *testing.T) {
	cases := []struct {
		value string
		start string
		end   string
		ok    bool
	}{
		{"custom:2024-03-01_2024-03-15", "2024-03-01", "2024-03-15", true},
		{"custom:2024-03-01_", "2024-03-01", "", true},
		{"custom:_2024-03-15", "", "2024-03-15", true},
		{"custom:2024-03-01", "2024-03-01", "", true},
		{"today", "", "", false},
	}

	for _, c := range cases {
		start, end, ok := parseCustomRange(c.value)
		if start != c.start || end != c.end || ok != c.ok {
			t.Fatalf("parseCustomRange(%q) = (%q, %q, %v)", c.value, start, end, ok)
		}
	}
}

func TestOptionLabelFallback(t *testing.T) {
	c := Condition{
		Value:   "unknown",
		Options: []Option{{Value: "visited", Label: "已到店"}},
	}
	if got := OptionLabel(c); got != "unknown" {
		t.Fatalf("fallback label = %q", got)
	}

	c.Value = "visited"
	if got := OptionLabel(c); got != "已到店" {
		t.Fatalf("label = %q", got)
	}
}
