package stats

import "classctl/internal/store"

// ClassHistoryPoint is one attendance date in a class's time series.
// Activities is nil on dates with no same-day assignments: the chart
// renders a gap there, not zero.
type ClassHistoryPoint struct {
	Date       string
	Attendance int
	Activities *int
}

// ClassHistory computes, for each distinct attendance date in range
// (ascending), the class's single-day attendance percentage
// (present / enrolled) and, independently, a completion percentage pooled
// over students × assignments dated exactly that day.
func ClassHistory(snap store.Snapshot, q Query, classID string) []ClassHistoryPoint {
	cl := snap.ClassByID(classID)
	if cl == nil {
		return nil
	}
	students := snap.StudentsInClass(cl.Name)
	if len(students) == 0 {
		return nil
	}

	var out []ClassHistoryPoint
	for _, date := range AttendanceDates(snap, q) {
		present := 0
		for _, st := range students {
			if rec := snap.Attendance(st.ID, date); rec != nil && rec.Present {
				present++
			}
		}
		point := ClassHistoryPoint{
			Date:       date,
			Attendance: roundPct(present, len(students)),
		}

		var dayActs []store.Assignment
		for _, a := range snap.Assignments {
			if a.ClassID == classID && a.Date == date {
				dayActs = append(dayActs, a)
			}
		}
		if len(dayActs) > 0 {
			doneSum := 0
			for _, st := range students {
				for _, a := range dayActs {
					if rec := snap.AssignmentStatus(st.ID, a.ID); rec != nil && rec.Done {
						doneSum++
					}
				}
			}
			pct := roundPct(doneSum, len(students)*len(dayActs))
			point.Activities = &pct
		}
		out = append(out, point)
	}
	return out
}

// StudentHistoryPoint is one attendance date in a student's time series.
// Cumulative is the running attendance percentage up to and including the
// date. Present is 100/0 for a marked day and nil when the student has no
// record that day. DayActivities is nil on dates where the student's class
// has no assignments.
type StudentHistoryPoint struct {
	Date          string
	Cumulative    int
	Present       *int
	DayActivities *int
}

// StudentHistory computes a student's evolution across the global
// attendance dates in range.
func StudentHistory(snap store.Snapshot, q Query, studentID string) []StudentHistoryPoint {
	st := snap.StudentByID(studentID)
	if st == nil {
		return nil
	}
	cl := snap.ClassByName(st.ClassName)

	var out []StudentHistoryPoint
	cumulativePresent := 0
	for i, date := range AttendanceDates(snap, q) {
		rec := snap.Attendance(studentID, date)
		if rec != nil && rec.Present {
			cumulativePresent++
		}

		point := StudentHistoryPoint{
			Date:       date,
			Cumulative: roundPct(cumulativePresent, i+1),
		}
		if rec != nil {
			v := 0
			if rec.Present {
				v = 100
			}
			point.Present = &v
		}

		if cl != nil {
			var dayActs []store.Assignment
			for _, a := range snap.Assignments {
				if a.ClassID == cl.ID && a.Date == date {
					dayActs = append(dayActs, a)
				}
			}
			if len(dayActs) > 0 {
				done := 0
				for _, a := range dayActs {
					if r := snap.AssignmentStatus(studentID, a.ID); r != nil && r.Done {
						done++
					}
				}
				pct := roundPct(done, len(dayActs))
				point.DayActivities = &pct
			}
		}
		out = append(out, point)
	}
	return out
}
