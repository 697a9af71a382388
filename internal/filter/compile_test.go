package filter

import (
	"testing"
)

func TestBuildFiltersVisitStatus(t *testing.T) {
	got := BuildFilters([]Condition{{Type: TypeVisitStatus, Value: "visited"}})
	if got.IsArrive == nil || *got.IsArrive != 1 {
		t.Fatalf("visited should compile to is_arrive=1, got %v", got.IsArrive)
	}

	got = BuildFilters([]Condition{{Type: TypeVisitStatus, Value: "not_visited"}})
	if got.IsArrive == nil || *got.IsArrive != 0 {
		t.Fatalf("not_visited should compile to is_arrive=0, got %v", got.IsArrive)
	}

	// scheduled 历史上不映射任何字段
	got = BuildFilters([]Condition{{Type: TypeVisitStatus, Value: "scheduled"}})
	if got.IsArrive != nil {
		t.Fatalf("scheduled should not set is_arrive, got %v", *got.IsArrive)
	}
	if !got.Empty() {
		t.Fatalf("scheduled should compile to empty filters, got %+v", got)
	}
}

func TestBuildFiltersCustomRange(t *testing.T) {
	got := BuildFilters([]Condition{
		{Type: TypeLastFollowTime, Value: "custom:2024-01-01_2024-01-31"},
	})
	if got.LatestFollowStart != "2024-01-01" || got.LatestFollowEnd != "2024-01-31" {
		t.Fatalf("unexpected range: %q..%q", got.LatestFollowStart, got.LatestFollowEnd)
	}

	// 单侧为空
	got = BuildFilters([]Condition{
		{Type: TypeNextFollow, Value: "custom:2024-06-01_"},
	})
	if got.NextFollowStart != "2024-06-01" || got.NextFollowEnd != "" {
		t.Fatalf("open-ended range mishandled: %q..%q", got.NextFollowStart, got.NextFollowEnd)
	}
}

func TestBuildFiltersDirectFields(t *testing.T) {
	got := BuildFilters([]Condition{
		{Type: TypeCarModel, Value: "SUV"},
		{Type: TypeCustomerLevel, Value: "H级"},
	})
	if got.LeadsProduct != "SUV" {
		t.Fatalf("leads_product = %q, want SUV", got.LeadsProduct)
	}
	if got.LeadsType != "H级" {
		t.Fatalf("leads_type = %q, want H级", got.LeadsType)
	}
}

func TestBuildFiltersSkipsUnsetConditions(t *testing.T) {
	got := BuildFilters([]Condition{
		{Type: TypeCarModel, Value: ""},
		{Type: TypeCustomerLevel},
	})
	if !got.Empty() {
		t.Fatalf("unset conditions should compile to empty filters, got %+v", got)
	}
}

func TestEncodeCustomRangeRoundTrip(t *testing.T) {
	value := EncodeCustomRange("2024-03-01", "2024-03-15")
	if value != "custom:2024-03-01_2024-03-15" {
		t.Fatalf("encoded = %q", value)
	}
	start, end, ok := parseCustomRange(value)
	if !ok || start != "2024-03-01" || end != "2024-03-15" {
		t.Fatalf("round trip failed: %q %q %v", start, end, ok)
	}

	if _, _, ok := parseCustomRange("this_week"); ok {
		t.Fatalf("non-custom value should not parse")
	}
}
