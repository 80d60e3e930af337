package store

import "strings"

// Mutation semantics shared by every operation in this file:
//
//   - validation failures and unknown ids are no-ops signalled through the
//     return value, never panics (the UI shows inline feedback);
//   - "at most one record per key pair" collections use find-or-create,
//     never insert-duplicate;
//   - removing a parent deletes every record referencing it by id.

// AddClass creates a class with a unique, case-insensitive name.
// It returns the created class so callers (the CSV importer in particular)
// can use its id immediately.
func (s *Store) AddClass(name string) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if s.snap.ClassByName(name) != nil {
		return nil, ErrClassExists
	}

	next := s.snap.clone()
	cl := Class{ID: s.newID(), Name: name}
	next.Classes = append(next.Classes, cl)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	s.logger.Info("class added", "class", cl.Name)
	return &cl, nil
}

// RemoveClass deletes the class and cascades: students whose denormalized
// class name equals it, the class's assignments and minimal tasks, and all
// records of those students, assignments and tasks. Unknown id is a no-op.
func (s *Store) RemoveClass(id string) error {
	cl := s.snap.ClassByID(id)
	if cl == nil {
		return nil
	}

	next := s.snap.clone()

	removedStudents := map[string]bool{}
	next.Students = filter(next.Students, func(st Student) bool {
		if st.ClassName == cl.Name {
			removedStudents[st.ID] = true
			return false
		}
		return true
	})

	removedAssignments := map[string]bool{}
	next.Assignments = filter(next.Assignments, func(a Assignment) bool {
		if a.ClassID == id {
			removedAssignments[a.ID] = true
			return false
		}
		return true
	})

	removedTasks := map[string]bool{}
	next.MinimalTasks = filter(next.MinimalTasks, func(t MinimalTask) bool {
		if t.ClassID == id {
			removedTasks[t.ID] = true
			return false
		}
		return true
	})

	next.Classes = filter(next.Classes, func(c Class) bool { return c.ID != id })
	next.AttendanceRecords = filter(next.AttendanceRecords, func(r AttendanceRecord) bool {
		return !removedStudents[r.StudentID]
	})
	next.AssignmentRecords = filter(next.AssignmentRecords, func(r AssignmentRecord) bool {
		return !removedStudents[r.StudentID] && !removedAssignments[r.AssignmentID]
	})
	next.ClassSessionRecords = filter(next.ClassSessionRecords, func(r ClassSessionRecord) bool {
		return !removedStudents[r.StudentID]
	})
	next.MinimalTaskRecords = filter(next.MinimalTaskRecords, func(r MinimalTaskRecord) bool {
		return !removedStudents[r.StudentID] && !removedTasks[r.MinimalTaskID]
	})

	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Info("class removed", "class", cl.Name, "students", len(removedStudents))
	return nil
}

// AddStudent enrolls a student in the class identified by classID, copying
// the class's current name into the student. Returns (nil, nil) when the
// class does not exist or the trimmed name is empty.
func (s *Store) AddStudent(name, classID string) (*Student, error) {
	name = strings.TrimSpace(name)
	cl := s.snap.ClassByID(classID)
	if cl == nil || name == "" {
		return nil, nil
	}

	next := s.snap.clone()
	st := Student{
		ID:        s.newID(),
		Name:      name,
		ClassName: cl.Name,
		CreatedAt: s.now(),
	}
	next.Students = append(next.Students, st)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return &st, nil
}

// RemoveStudent deletes the student and every record referencing their id.
func (s *Store) RemoveStudent(id string) error {
	if s.snap.StudentByID(id) == nil {
		return nil
	}

	next := s.snap.clone()
	next.Students = filter(next.Students, func(st Student) bool { return st.ID != id })
	next.AttendanceRecords = filter(next.AttendanceRecords, func(r AttendanceRecord) bool {
		return r.StudentID != id
	})
	next.AssignmentRecords = filter(next.AssignmentRecords, func(r AssignmentRecord) bool {
		return r.StudentID != id
	})
	next.ClassSessionRecords = filter(next.ClassSessionRecords, func(r ClassSessionRecord) bool {
		return r.StudentID != id
	})
	next.MinimalTaskRecords = filter(next.MinimalTaskRecords, func(r MinimalTaskRecord) bool {
		return r.StudentID != id
	})
	return s.commit(next)
}

// AddAssignment creates a dated assignment for a class. When the store was
// opened with materialization on, one pending record is created for every
// student currently enrolled; otherwise records appear lazily on first
// toggle. Returns (nil, nil) when the class is unknown or the name empty.
func (s *Store) AddAssignment(classID, name, date string) (*Assignment, error) {
	name = strings.TrimSpace(name)
	cl := s.snap.ClassByID(classID)
	if cl == nil || name == "" || date == "" {
		return nil, nil
	}

	next := s.snap.clone()
	a := Assignment{
		ID:        s.newID(),
		ClassID:   classID,
		Name:      name,
		Date:      date,
		CreatedAt: s.now(),
	}
	next.Assignments = append(next.Assignments, a)
	if s.materialize {
		for _, st := range next.StudentsInClass(cl.Name) {
			next.AssignmentRecords = append(next.AssignmentRecords, AssignmentRecord{
				ID:           s.newID(),
				StudentID:    st.ID,
				AssignmentID: a.ID,
			})
		}
	}
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return &a, nil
}

// RemoveAssignment deletes the assignment and its records.
func (s *Store) RemoveAssignment(id string) error {
	if s.snap.AssignmentByID(id) == nil {
		return nil
	}

	next := s.snap.clone()
	next.Assignments = filter(next.Assignments, func(a Assignment) bool { return a.ID != id })
	next.AssignmentRecords = filter(next.AssignmentRecords, func(r AssignmentRecord) bool {
		return r.AssignmentID != id
	})
	return s.commit(next)
}

// AddMinimalTask creates a dated question set for a class. Returns
// (nil, nil) when the class is unknown, the name is empty or totalQuestions
// is not positive.
func (s *Store) AddMinimalTask(classID, name, date string, totalQuestions int) (*MinimalTask, error) {
	name = strings.TrimSpace(name)
	if s.snap.ClassByID(classID) == nil || name == "" || date == "" || totalQuestions <= 0 {
		return nil, nil
	}

	next := s.snap.clone()
	t := MinimalTask{
		ID:             s.newID(),
		ClassID:        classID,
		Name:           name,
		Date:           date,
		TotalQuestions: totalQuestions,
		CreatedAt:      s.now(),
	}
	next.MinimalTasks = append(next.MinimalTasks, t)
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return &t, nil
}

// RemoveMinimalTask deletes the task and its records.
func (s *Store) RemoveMinimalTask(id string) error {
	if s.snap.MinimalTaskByID(id) == nil {
		return nil
	}

	next := s.snap.clone()
	next.MinimalTasks = filter(next.MinimalTasks, func(t MinimalTask) bool { return t.ID != id })
	next.MinimalTaskRecords = filter(next.MinimalTaskRecords, func(r MinimalTaskRecord) bool {
		return r.MinimalTaskID != id
	})
	return s.commit(next)
}

// ToggleAttendance flips the presence mark for (studentID, date),
// creating the record with present=true on first toggle.
func (s *Store) ToggleAttendance(studentID, date string) error {
	next := s.snap.clone()
	for i := range next.AttendanceRecords {
		r := &next.AttendanceRecords[i]
		if r.StudentID == studentID && r.Date == date {
			r.Present = !r.Present
			return s.commit(next)
		}
	}
	next.AttendanceRecords = append(next.AttendanceRecords, AttendanceRecord{
		ID:        s.newID(),
		StudentID: studentID,
		Date:      date,
		Present:   true,
	})
	return s.commit(next)
}

// ToggleAssignmentRecord flips the done mark for (studentID, assignmentID),
// creating the record with done=true on first toggle. BonusTag is untouched.
func (s *Store) ToggleAssignmentRecord(studentID, assignmentID string) error {
	next := s.snap.clone()
	for i := range next.AssignmentRecords {
		r := &next.AssignmentRecords[i]
		if r.StudentID == studentID && r.AssignmentID == assignmentID {
			r.Done = !r.Done
			return s.commit(next)
		}
	}
	next.AssignmentRecords = append(next.AssignmentRecords, AssignmentRecord{
		ID:           s.newID(),
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Done:         true,
	})
	return s.commit(next)
}

// CycleAssignmentBonus advances the bonus tag through
// none -> yellow -> green -> none on the same record that
// ToggleAssignmentRecord operates on. First press on a missing record
// creates it with done=false and a yellow tag.
func (s *Store) CycleAssignmentBonus(studentID, assignmentID string) error {
	next := s.snap.clone()
	for i := range next.AssignmentRecords {
		r := &next.AssignmentRecords[i]
		if r.StudentID == studentID && r.AssignmentID == assignmentID {
			r.BonusTag = r.BonusTag.Next()
			return s.commit(next)
		}
	}
	next.AssignmentRecords = append(next.AssignmentRecords, AssignmentRecord{
		ID:           s.newID(),
		StudentID:    studentID,
		AssignmentID: assignmentID,
		BonusTag:     BonusYellow,
	})
	return s.commit(next)
}

// SetMinimalTaskRecord records progress for (studentID, minimalTaskID).
// questionsDone is clamped to [0, task.TotalQuestions] here, not only in
// the UI. Unknown task id is a no-op.
func (s *Store) SetMinimalTaskRecord(studentID, minimalTaskID string, questionsDone int) error {
	task := s.snap.MinimalTaskByID(minimalTaskID)
	if task == nil {
		return nil
	}
	if questionsDone < 0 {
		questionsDone = 0
	}
	if questionsDone > task.TotalQuestions {
		questionsDone = task.TotalQuestions
	}

	next := s.snap.clone()
	for i := range next.MinimalTaskRecords {
		r := &next.MinimalTaskRecords[i]
		if r.StudentID == studentID && r.MinimalTaskID == minimalTaskID {
			r.QuestionsDone = questionsDone
			return s.commit(next)
		}
	}
	next.MinimalTaskRecords = append(next.MinimalTaskRecords, MinimalTaskRecord{
		ID:            s.newID(),
		StudentID:     studentID,
		MinimalTaskID: minimalTaskID,
		QuestionsDone: questionsDone,
	})
	return s.commit(next)
}

// ToggleParticipation flips the participation flag on the class-session
// record for (studentID, date), creating it if needed. The extra-point flag
// on the same record is untouched.
func (s *Store) ToggleParticipation(studentID, date string) error {
	return s.toggleSession(studentID, date, func(r *ClassSessionRecord) {
		r.Participated = !r.Participated
	}, ClassSessionRecord{Participated: true})
}

// ToggleExtraPoint flips the extra-point flag on the class-session record
// for (studentID, date), creating it if needed. Participation is untouched.
func (s *Store) ToggleExtraPoint(studentID, date string) error {
	return s.toggleSession(studentID, date, func(r *ClassSessionRecord) {
		r.ExtraPoint = !r.ExtraPoint
	}, ClassSessionRecord{ExtraPoint: true})
}

// toggleSession finds or creates the single session record for the pair and
// applies flip to it. Both flag toggles share this path so they can never
// produce duplicate records for one (student, date).
func (s *Store) toggleSession(studentID, date string, flip func(*ClassSessionRecord), seed ClassSessionRecord) error {
	next := s.snap.clone()
	for i := range next.ClassSessionRecords {
		r := &next.ClassSessionRecords[i]
		if r.StudentID == studentID && r.Date == date {
			flip(r)
			return s.commit(next)
		}
	}
	seed.ID = s.newID()
	seed.StudentID = studentID
	seed.Date = date
	next.ClassSessionRecords = append(next.ClassSessionRecords, seed)
	return s.commit(next)
}

// filter returns the elements of in for which keep is true, preserving order.
func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out
}
