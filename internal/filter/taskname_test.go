package filter

import (
	"strings"
	"testing"
)

func TestGenerateTaskNameEmpty(t *testing.T) {
	if got := GenerateTaskName(nil); got != "发起任务-" {
		t.Fatalf("empty selection = %q", got)
	}
}

func TestGenerateTaskNameOptionLabel(t *testing.T) {
	got := GenerateTaskName([]Condition{
		{
			Type:    TypeCustomerLevel,
			Value:   "H级",
			Options: []Option{{Value: "H级", Label: "H级"}},
		},
	})
	if got != "发起任务-H级" {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateTaskNameCustomRanges(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"custom:2024-01-01_2024-01-31", "2024-01-01至2024-01-31"},
		{"custom:2024-01-01_", "从2024-01-01开始"},
		{"custom:_2024-01-31", "到2024-01-31结束"},
	}
	for _, c := range cases {
		got := GenerateTaskName([]Condition{{Type: TypeLastFollowTime, Value: c.value}})
		if got != "发起任务-"+c.want {
			t.Errorf("value %q: got %q, want suffix %q", c.value, got, c.want)
		}
	}
}

func TestGenerateTaskNameSymbolicToken(t *testing.T) {
	got := GenerateTaskName([]Condition{{Type: TypeNextFollow, Value: "this_week"}})
	if !strings.HasPrefix(got, "发起任务-") || !strings.Contains(got, "至") {
		t.Fatalf("symbolic token should render as date range, got %q", got)
	}
}

func TestGenerateTaskNameJoinsWithDunhao(t *testing.T) {
	got := GenerateTaskName([]Condition{
		{Type: TypeCarModel, Value: "SUV", Options: []Option{{Value: "SUV", Label: "SUV"}}},
		{Type: TypeCustomerLevel, Value: "A级", Options: []Option{{Value: "A级", Label: "A级"}}},
	})
	if got != "发起任务-SUV、A级" {
		t.Fatalf("got %q", got)
	}
}
