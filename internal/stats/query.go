// Package stats is the aggregation engine: pure, deterministic query
// functions over a store.Snapshot. Nothing here mutates or caches; every
// call recomputes from the full current snapshot, which is cheap at
// classroom scale and makes staleness a non-issue.
package stats

import (
	"math"
	"sort"

	"classctl/internal/store"
)

// AllClasses is the class filter value selecting every class.
const AllClasses = "all"

// Query is the filter context shared by all derivations: a class-name
// filter plus an optional inclusive date range. Dates are "2006-01-02"
// strings and compare lexically; an empty bound is open.
type Query struct {
	Class string
	From  string
	To    string
}

// allClasses reports whether the query selects every class.
func (q Query) allClasses() bool {
	return q.Class == "" || q.Class == AllClasses
}

// inRange reports whether date falls inside the query's bounds.
func (q Query) inRange(date string) bool {
	if q.From != "" && date < q.From {
		return false
	}
	if q.To != "" && date > q.To {
		return false
	}
	return true
}

// Students returns the students selected by the class filter, in snapshot
// order.
func Students(snap store.Snapshot, q Query) []store.Student {
	if q.allClasses() {
		return snap.Students
	}
	return snap.StudentsInClass(q.Class)
}

// AttendanceDates returns the distinct dates of all attendance records in
// the whole snapshot, restricted to the range and sorted ascending. This is
// the global denominator set for attendance percentages: a date counts for
// every student even if a given student has no record on it.
func AttendanceDates(snap store.Snapshot, q Query) []string {
	seen := map[string]bool{}
	var dates []string
	for _, r := range snap.AttendanceRecords {
		if !q.inRange(r.Date) || seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		dates = append(dates, r.Date)
	}
	sort.Strings(dates)
	return dates
}

// Assignments returns the assignments selected by the class filter and
// range, sorted by date (stable, so same-day assignments keep input order).
func Assignments(snap store.Snapshot, q Query) []store.Assignment {
	var classID string
	if !q.allClasses() {
		cl := snap.ClassByName(q.Class)
		if cl == nil {
			return nil
		}
		classID = cl.ID
	}

	var out []store.Assignment
	for _, a := range snap.Assignments {
		if classID != "" && a.ClassID != classID {
			continue
		}
		if !q.inRange(a.Date) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// roundPct computes round(100*n/d) with round-half-up semantics, matching
// what every view layer historically displayed. Rounding happens exactly
// once, here, on the final ratio.
func roundPct(n, d int) int {
	return int(math.Round(100 * float64(n) / float64(d)))
}
