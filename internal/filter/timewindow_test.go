package filter

import (
	"testing"
	"time"
)

// 2024-06-12 是周三
var anchor = time.Date(2024, 6, 12, 15, 30, 0, 0, time.Local)

func TestResolveTimeWindowDays(t *testing.T) {
	w, ok := ResolveTimeWindowAt("today", anchor)
	if !ok || w.Start != "2024-06-12" || w.End != "2024-06-12" {
		t.Fatalf("today = %+v, ok=%v", w, ok)
	}

	w, ok = ResolveTimeWindowAt("yesterday", anchor)
	if !ok || w.Start != "2024-06-11" || w.End != "2024-06-11" {
		t.Fatalf("yesterday = %+v, ok=%v", w, ok)
	}
}

func TestResolveTimeWindowWeeksAnchorSunday(t *testing.T) {
	w, ok := ResolveTimeWindowAt("this_week", anchor)
	if !ok || w.Start != "2024-06-09" || w.End != "2024-06-15" {
		t.Fatalf("this_week = %+v, ok=%v", w, ok)
	}

	w, _ = ResolveTimeWindowAt("last_week", anchor)
	if w.Start != "2024-06-02" || w.End != "2024-06-08" {
		t.Fatalf("last_week = %+v", w)
	}

	w, _ = ResolveTimeWindowAt("next_week", anchor)
	if w.Start != "2024-06-16" || w.End != "2024-06-22" {
		t.Fatalf("next_week = %+v", w)
	}
}

func TestResolveTimeWindowMonths(t *testing.T) {
	w, _ := ResolveTimeWindowAt("this_month", anchor)
	if w.Start != "2024-06-01" || w.End != "2024-06-30" {
		t.Fatalf("this_month = %+v", w)
	}

	w, _ = ResolveTimeWindowAt("last_month", anchor)
	if w.Start != "2024-05-01" || w.End != "2024-05-31" {
		t.Fatalf("last_month = %+v", w)
	}

	w, _ = ResolveTimeWindowAt("next_month", anchor)
	if w.Start != "2024-07-01" || w.End != "2024-07-31" {
		t.Fatalf("next_month = %+v", w)
	}

	// 跨年
	janAnchor := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	w, _ = ResolveTimeWindowAt("last_month", janAnchor)
	if w.Start != "2023-12-01" || w.End != "2023-12-31" {
		t.Fatalf("last_month across year = %+v", w)
	}
}

func TestResolveTimeWindowUnknownToken(t *testing.T) {
	if _, ok := ResolveTimeWindowAt("bogus", anchor); ok {
		t.Fatalf("bogus token should not resolve")
	}
	// custom 走单独分支，不在 resolver 范围内
	if _, ok := ResolveTimeWindowAt("custom", anchor); ok {
		t.Fatalf("custom token should not resolve")
	}
}
