package engine

import (
	"sort"
	"time"
)

// DateLayout is the calendar-day key format used throughout the log.
const DateLayout = "2006-01-02"

// DayLog records which task/stage ids were completed on one calendar date.
// An entry with an empty Completed set is equivalent to no entry at all.
type DayLog struct {
	Date      string
	Completed []string
}

// Has reports whether the given id was completed on this day.
func (d DayLog) Has(id string) bool {
	for _, c := range d.Completed {
		if c == id {
			return true
		}
	}
	return false
}

// ToggleCompletion flips the presence of id on the given date: present is
// removed, absent is added. The date entry is created when missing. The input
// slice is not mutated.
func ToggleCompletion(log []DayLog, date string, id string) []DayLog {
	out := make([]DayLog, 0, len(log)+1)
	found := false
	for _, entry := range log {
		if entry.Date != date {
			out = append(out, entry)
			continue
		}
		found = true
		next := DayLog{Date: date}
		removed := false
		for _, c := range entry.Completed {
			if c == id {
				removed = true
				continue
			}
			next.Completed = append(next.Completed, c)
		}
		if !removed {
			next.Completed = append(next.Completed, id)
		}
		out = append(out, next)
	}
	if !found {
		out = append(out, DayLog{Date: date, Completed: []string{id}})
	}
	return out
}

// CompletedOn returns the completed-id set for one date.
func CompletedOn(log []DayLog, date string) map[string]bool {
	for _, entry := range log {
		if entry.Date == date {
			set := make(map[string]bool, len(entry.Completed))
			for _, id := range entry.Completed {
				set[id] = true
			}
			return set
		}
	}
	return nil
}

// CompletedIDs returns the union of completed ids across the whole log.
// Dependency satisfaction and campaign progress are global-log membership,
// not date-scoped.
func CompletedIDs(log []DayLog) map[string]bool {
	set := make(map[string]bool)
	for _, entry := range log {
		for _, id := range entry.Completed {
			set[id] = true
		}
	}
	return set
}

// SortByDate returns the log ordered by date ascending. The stats fold
// depends on it for a canonical event order; display does too.
func SortByDate(log []DayLog) []DayLog {
	out := append([]DayLog(nil), log...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Today formats now as a calendar-day key.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// NextDay advances a calendar-day key by one day. Malformed input is
// returned unchanged.
func NextDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}

// DaysBetween counts whole calendar days from a to b, negative when b is
// earlier.
func DaysBetween(a, b string) int {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}
