package stats

import (
	"sort"

	"classctl/internal/store"
)

// MinimalTasks returns the minimal tasks selected by the class filter and
// range, sorted by date.
func MinimalTasks(snap store.Snapshot, q Query) []store.MinimalTask {
	var classID string
	if !q.allClasses() {
		cl := snap.ClassByName(q.Class)
		if cl == nil {
			return nil
		}
		classID = cl.ID
	}

	var out []store.MinimalTask
	for _, t := range snap.MinimalTasks {
		if classID != "" && t.ClassID != classID {
			continue
		}
		if !q.inRange(t.Date) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// StudentMinimalTasks computes a student's minimal-task progress over all
// tasks of their class within the range: summed questionsDone over summed
// totalQuestions, as a percentage. ok is false when the class has no tasks
// in range (rendered as "—").
func StudentMinimalTasks(snap store.Snapshot, q Query, studentID string) (pct int, ok bool) {
	st := snap.StudentByID(studentID)
	if st == nil {
		return 0, false
	}
	cl := snap.ClassByName(st.ClassName)
	if cl == nil {
		return 0, false
	}

	doneSum, totalSum := 0, 0
	for _, task := range MinimalTasks(snap, q) {
		if task.ClassID != cl.ID {
			continue
		}
		totalSum += task.TotalQuestions
		if rec := snap.TaskProgress(studentID, task.ID); rec != nil {
			doneSum += rec.QuestionsDone
		}
	}
	if totalSum == 0 {
		return 0, false
	}
	return roundPct(doneSum, totalSum), true
}
