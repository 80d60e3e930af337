package stats

import (
	"sort"

	"classctl/internal/store"
)

// Participation summarizes a student's class-session flags within the
// range. ClassDays is the number of distinct dates on which the student
// had class: the union of their attendance dates, their class's assignment
// dates and their session-record dates, intersected with the range. It is
// the denominator for the "participations per class day" ratio.
type Participation struct {
	Participations int
	ExtraPoints    int
	ClassDays      int
}

// ParticipationSummary computes the participation figures for one student.
func ParticipationSummary(snap store.Snapshot, q Query, studentID string) Participation {
	p := Participation{ClassDays: len(ClassDates(snap, q, studentID))}
	for _, r := range snap.ClassSessionRecords {
		if r.StudentID != studentID || !q.inRange(r.Date) {
			continue
		}
		if r.Participated {
			p.Participations++
		}
		if r.ExtraPoint {
			p.ExtraPoints++
		}
	}
	return p
}

// ClassDates returns the sorted "class dates for student" union set, for
// ParticipationSummary and for views that list the days themselves.
func ClassDates(snap store.Snapshot, q Query, studentID string) []string {
	days := map[string]bool{}
	for _, r := range snap.AttendanceRecords {
		if r.StudentID == studentID && q.inRange(r.Date) {
			days[r.Date] = true
		}
	}
	if st := snap.StudentByID(studentID); st != nil {
		if cl := snap.ClassByName(st.ClassName); cl != nil {
			for _, a := range snap.Assignments {
				if a.ClassID == cl.ID && q.inRange(a.Date) {
					days[a.Date] = true
				}
			}
		}
	}
	for _, r := range snap.ClassSessionRecords {
		if r.StudentID == studentID && q.inRange(r.Date) {
			days[r.Date] = true
		}
	}

	out := make([]string, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
