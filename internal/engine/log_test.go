package engine

import (
	"reflect"
	"testing"
)

func TestToggleCompletionRoundTrip(t *testing.T) {
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"a", "b"}},
	}
	once := ToggleCompletion(log, "2024-01-01", "c")
	twice := ToggleCompletion(once, "2024-01-01", "c")

	if !reflect.DeepEqual(normalize(twice), normalize(log)) {
		t.Fatalf("double toggle is not identity: %v vs %v", twice, log)
	}
}

func TestToggleCompletionCreatesDateEntry(t *testing.T) {
	out := ToggleCompletion(nil, "2024-05-05", "x")
	if len(out) != 1 || out[0].Date != "2024-05-05" || !out[0].Has("x") {
		t.Fatalf("unexpected log after toggle on missing date: %v", out)
	}
}

func TestToggleCompletionRemoves(t *testing.T) {
	log := []DayLog{{Date: "2024-01-01", Completed: []string{"a"}}}
	out := ToggleCompletion(log, "2024-01-01", "a")
	if out[0].Has("a") {
		t.Fatalf("id still present after toggle off")
	}
	if len(out[0].Completed) != 0 {
		t.Fatalf("entry should be empty, got %v", out[0].Completed)
	}
}

func TestToggleCompletionDoesNotMutateInput(t *testing.T) {
	log := []DayLog{{Date: "2024-01-01", Completed: []string{"a"}}}
	_ = ToggleCompletion(log, "2024-01-01", "b")
	if len(log[0].Completed) != 1 {
		t.Fatalf("input log mutated: %v", log[0].Completed)
	}
}

func TestCompletedIDsUnion(t *testing.T) {
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"a", "b"}},
		{Date: "2024-02-01", Completed: []string{"b", "c"}},
	}
	set := CompletedIDs(log)
	for _, id := range []string{"a", "b", "c"} {
		if !set[id] {
			t.Fatalf("union missing %s", id)
		}
	}
	if set["d"] {
		t.Fatalf("union has phantom id")
	}
}

func TestNextDayAndDaysBetween(t *testing.T) {
	if got := NextDay("2024-02-28"); got != "2024-02-29" {
		t.Fatalf("NextDay leap: got %s", got)
	}
	if got := NextDay("2024-12-31"); got != "2025-01-01" {
		t.Fatalf("NextDay year roll: got %s", got)
	}
	if got := DaysBetween("2024-01-01", "2024-01-04"); got != 3 {
		t.Fatalf("DaysBetween=%d, want 3", got)
	}
	if got := DaysBetween("2024-01-04", "2024-01-01"); got != -3 {
		t.Fatalf("DaysBetween reversed=%d, want -3", got)
	}
}

// normalize maps each date to its completed set so set semantics compare
// equal regardless of slice order.
func normalize(log []DayLog) map[string]map[string]bool {
	out := map[string]map[string]bool{}
	for _, d := range log {
		set := map[string]bool{}
		for _, id := range d.Completed {
			set[id] = true
		}
		out[d.Date] = set
	}
	return out
}
