package stats

import "classctl/internal/store"

// StudentAttendance computes a student's attendance percentage over the
// global date set: present records in range divided by the number of
// distinct attendance dates in range. ok is false when there are no dates;
// the per-student table renders that as "—" while comparison views
// substitute 0 (both behaviors preserved from the original views).
func StudentAttendance(snap store.Snapshot, q Query, studentID string) (pct int, ok bool) {
	dates := AttendanceDates(snap, q)
	if len(dates) == 0 {
		return 0, false
	}
	present := 0
	for _, r := range snap.AttendanceRecords {
		if r.StudentID == studentID && r.Present && q.inRange(r.Date) {
			present++
		}
	}
	return roundPct(present, len(dates)), true
}

// AttendanceCounts returns a student's present count alongside the size of
// the global date denominator, for views that display raw counts.
func AttendanceCounts(snap store.Snapshot, q Query, studentID string) (present, total int) {
	total = len(AttendanceDates(snap, q))
	for _, r := range snap.AttendanceRecords {
		if r.StudentID == studentID && r.Present && q.inRange(r.Date) {
			present++
		}
	}
	return present, total
}

// StudentActivities computes a student's assignment-completion percentage
// over the assignments of their own class within the range. ok is false
// when the class has no assignments in range.
func StudentActivities(snap store.Snapshot, q Query, studentID string) (pct int, ok bool) {
	done, total := ActivityCounts(snap, q, studentID)
	if total == 0 {
		return 0, false
	}
	return roundPct(done, total), true
}

// ActivityCounts returns a student's done count and the number of
// assignments of their class within the range.
func ActivityCounts(snap store.Snapshot, q Query, studentID string) (done, total int) {
	st := snap.StudentByID(studentID)
	if st == nil {
		return 0, 0
	}
	cl := snap.ClassByName(st.ClassName)
	if cl == nil {
		return 0, 0
	}
	for _, a := range Assignments(snap, q) {
		if a.ClassID != cl.ID {
			continue
		}
		total++
		if rec := snap.AssignmentStatus(studentID, a.ID); rec != nil && rec.Done {
			done++
		}
	}
	return done, total
}

// MeanOfStudentPercentages is one of the two coexisting class-level
// aggregation policies: the arithmetic mean of already-rounded per-student
// percentages. Returns 0 for an empty input.
func MeanOfStudentPercentages(pcts []int) int {
	if len(pcts) == 0 {
		return 0
	}
	sum := 0
	for _, p := range pcts {
		sum += p
	}
	return roundPct(sum, 100*len(pcts))
}

// PooledRatioPercentage is the other class-level policy: one ratio over
// pooled counts (for attendance, sum of present marks over
// students × dates). Returns 0 for a zero denominator.
//
// The two policies disagree in general and both are intentionally kept:
// the comparison charts use the mean, the summary-table chart pools.
func PooledRatioPercentage(num, den int) int {
	if den == 0 {
		return 0
	}
	return roundPct(num, den)
}

// ClassComparison is one class's entry in the comparison views.
type ClassComparison struct {
	Class      string
	Attendance int
	Activities int
	Students   int
}

// CompareClasses computes per-class attendance and activity percentages
// under the mean-of-student-percentages policy. Classes with no selected
// students report 0/0 rather than being dropped.
func CompareClasses(snap store.Snapshot, q Query) []ClassComparison {
	selected := Students(snap, q)
	out := make([]ClassComparison, 0, len(snap.Classes))
	for _, cl := range snap.Classes {
		var attPcts, actPcts []int
		n := 0
		for _, st := range selected {
			if st.ClassName != cl.Name {
				continue
			}
			n++
			att, _ := StudentAttendance(snap, q, st.ID)
			attPcts = append(attPcts, att)
			act, _ := StudentActivities(snap, q, st.ID)
			actPcts = append(actPcts, act)
		}
		out = append(out, ClassComparison{
			Class:      cl.Name,
			Attendance: MeanOfStudentPercentages(attPcts),
			Activities: MeanOfStudentPercentages(actPcts),
			Students:   n,
		})
	}
	return out
}

// PooledClassSummary computes the summary-table chart figures for one
// class: pooled present marks over students × dates, and pooled done marks
// over students × class assignments in range.
func PooledClassSummary(snap store.Snapshot, q Query, className string) (attendance, activities int) {
	cl := snap.ClassByName(className)
	if cl == nil {
		return 0, 0
	}
	students := snap.StudentsInClass(cl.Name)
	dates := AttendanceDates(snap, q)

	presentSum := 0
	for _, st := range students {
		p, _ := AttendanceCounts(snap, q, st.ID)
		presentSum += p
	}
	attendance = PooledRatioPercentage(presentSum, len(students)*len(dates))

	var classActs []store.Assignment
	for _, a := range Assignments(snap, q) {
		if a.ClassID == cl.ID {
			classActs = append(classActs, a)
		}
	}
	doneSum := 0
	for _, st := range students {
		for _, a := range classActs {
			if rec := snap.AssignmentStatus(st.ID, a.ID); rec != nil && rec.Done {
				doneSum++
			}
		}
	}
	activities = PooledRatioPercentage(doneSum, len(students)*len(classActs))
	return attendance, activities
}
