package stats

import (
	"sort"

	"classctl/internal/store"
)

// RankEntry is one student's row in the ranking view. Attendance and
// Activities carry the comparison-view convention of 0 for an empty
// denominator.
type RankEntry struct {
	Student    store.Student
	Attendance int
	Activities int
}

// Score is the ranking key: the unweighted sum of the two percentages
// (not their average).
func (e RankEntry) Score() int {
	return e.Attendance + e.Activities
}

// Ranking sorts the selected students descending by score. The sort is
// stable: ties keep the input order.
func Ranking(snap store.Snapshot, q Query) []RankEntry {
	students := Students(snap, q)
	out := make([]RankEntry, 0, len(students))
	for _, st := range students {
		att, _ := StudentAttendance(snap, q, st.ID)
		act, _ := StudentActivities(snap, q, st.ID)
		out = append(out, RankEntry{Student: st, Attendance: att, Activities: act})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score() > out[j].Score() })
	return out
}
