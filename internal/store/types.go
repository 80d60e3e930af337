// Package store holds the normalized classroom record graph: flat
// collections of students, classes, assignments and their per-student
// records, persisted as a single JSON snapshot and mutated through the
// synchronous operations in mutate.go.
package store

import (
	"strings"
	"time"
)

// BonusTag marks an assignment record with an extra-credit color.
type BonusTag string

const (
	BonusNone   BonusTag = ""
	BonusYellow BonusTag = "yellow"
	BonusGreen  BonusTag = "green"
)

// Next advances the tag through the cycle none -> yellow -> green -> none.
func (t BonusTag) Next() BonusTag {
	switch t {
	case BonusNone:
		return BonusYellow
	case BonusYellow:
		return BonusGreen
	default:
		return BonusNone
	}
}

// Student is enrolled in a class. ClassName is a denormalized copy of the
// class name taken at creation time, not a foreign key; class membership
// lookups compare this string (see Snapshot.StudentsInClass).
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClassName string    `json:"className"`
	CreatedAt time.Time `json:"createdAt"`
}

// Class groups students and assignments. Names are unique case-insensitively.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment is a dated activity belonging to one class.
// Dates are calendar days in "2006-01-02" form; they order lexically.
type Assignment struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"classId"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttendanceRecord holds at most one presence mark per (student, date).
type AttendanceRecord struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Present   bool   `json:"present"`
}

// AssignmentRecord holds at most one completion mark per
// (student, assignment). BonusTag is independent of Done.
type AssignmentRecord struct {
	ID           string   `json:"id"`
	StudentID    string   `json:"studentId"`
	AssignmentID string   `json:"assignmentId"`
	Done         bool     `json:"done"`
	BonusTag     BonusTag `json:"bonusTag,omitempty"`
}

// ClassSessionRecord carries two independent flags for one (student, date):
// whether the student participated in class and whether they earned an
// extra point.
type ClassSessionRecord struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId"`
	Date         string `json:"date"`
	Participated bool   `json:"participated"`
	ExtraPoint   bool   `json:"extraPoint"`
}

// MinimalTask is a dated question set belonging to one class.
type MinimalTask struct {
	ID             string    `json:"id"`
	ClassID        string    `json:"classId"`
	Name           string    `json:"name"`
	Date           string    `json:"date"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MinimalTaskRecord holds at most one progress mark per (student, task).
// QuestionsDone is clamped to [0, TotalQuestions] by the store.
type MinimalTaskRecord struct {
	ID            string `json:"id"`
	StudentID     string `json:"studentId"`
	MinimalTaskID string `json:"minimalTaskId"`
	QuestionsDone int    `json:"questionsDone"`
}

// Snapshot is the full persisted state: eight flat collections serialized
// as one JSON document. Query code treats snapshots as read-only values;
// all writes go through Store mutations.
type Snapshot struct {
	Students            []Student            `json:"students"`
	Classes             []Class              `json:"classes"`
	Assignments         []Assignment         `json:"assignments"`
	AttendanceRecords   []AttendanceRecord   `json:"attendanceRecords"`
	AssignmentRecords   []AssignmentRecord   `json:"assignmentRecords"`
	ClassSessionRecords []ClassSessionRecord `json:"classSessionRecords"`
	MinimalTasks        []MinimalTask        `json:"minimalTasks"`
	MinimalTaskRecords  []MinimalTaskRecord  `json:"minimalTaskRecords"`
}

// normalize replaces nil collections with empty ones so a partially
// populated or legacy snapshot never surfaces nil slices to callers.
func (s *Snapshot) normalize() {
	if s.Students == nil {
		s.Students = []Student{}
	}
	if s.Classes == nil {
		s.Classes = []Class{}
	}
	if s.Assignments == nil {
		s.Assignments = []Assignment{}
	}
	if s.AttendanceRecords == nil {
		s.AttendanceRecords = []AttendanceRecord{}
	}
	if s.AssignmentRecords == nil {
		s.AssignmentRecords = []AssignmentRecord{}
	}
	if s.ClassSessionRecords == nil {
		s.ClassSessionRecords = []ClassSessionRecord{}
	}
	if s.MinimalTasks == nil {
		s.MinimalTasks = []MinimalTask{}
	}
	if s.MinimalTaskRecords == nil {
		s.MinimalTaskRecords = []MinimalTaskRecord{}
	}
}

// clone returns a snapshot whose slices share no backing arrays with the
// receiver. Element structs contain no pointers, so copying the slices is
// enough to isolate an in-flight mutation from the last persisted state.
func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Students:            append([]Student{}, s.Students...),
		Classes:             append([]Class{}, s.Classes...),
		Assignments:         append([]Assignment{}, s.Assignments...),
		AttendanceRecords:   append([]AttendanceRecord{}, s.AttendanceRecords...),
		AssignmentRecords:   append([]AssignmentRecord{}, s.AssignmentRecords...),
		ClassSessionRecords: append([]ClassSessionRecord{}, s.ClassSessionRecords...),
		MinimalTasks:        append([]MinimalTask{}, s.MinimalTasks...),
		MinimalTaskRecords:  append([]MinimalTaskRecord{}, s.MinimalTaskRecords...),
	}
}

// ClassByID returns the class with the given id, or nil.
func (s *Snapshot) ClassByID(id string) *Class {
	for i := range s.Classes {
		if s.Classes[i].ID == id {
			return &s.Classes[i]
		}
	}
	return nil
}

// ClassByName returns the class whose name matches case-insensitively, or nil.
func (s *Snapshot) ClassByName(name string) *Class {
	for i := range s.Classes {
		if strings.EqualFold(s.Classes[i].Name, name) {
			return &s.Classes[i]
		}
	}
	return nil
}

// StudentByID returns the student with the given id, or nil.
func (s *Snapshot) StudentByID(id string) *Student {
	for i := range s.Students {
		if s.Students[i].ID == id {
			return &s.Students[i]
		}
	}
	return nil
}

// AssignmentByID returns the assignment with the given id, or nil.
func (s *Snapshot) AssignmentByID(id string) *Assignment {
	for i := range s.Assignments {
		if s.Assignments[i].ID == id {
			return &s.Assignments[i]
		}
	}
	return nil
}

// MinimalTaskByID returns the minimal task with the given id, or nil.
func (s *Snapshot) MinimalTaskByID(id string) *MinimalTask {
	for i := range s.MinimalTasks {
		if s.MinimalTasks[i].ID == id {
			return &s.MinimalTasks[i]
		}
	}
	return nil
}

// StudentsInClass returns the students whose denormalized class name equals
// className. Every class-membership filter in the system goes through this
// accessor, so a later move to id-based references touches one place.
func (s *Snapshot) StudentsInClass(className string) []Student {
	var out []Student
	for _, st := range s.Students {
		if st.ClassName == className {
			out = append(out, st)
		}
	}
	return out
}

// Attendance returns the attendance record for (studentID, date), or nil.
func (s *Snapshot) Attendance(studentID, date string) *AttendanceRecord {
	for i := range s.AttendanceRecords {
		r := &s.AttendanceRecords[i]
		if r.StudentID == studentID && r.Date == date {
			return r
		}
	}
	return nil
}

// AssignmentStatus returns the record for (studentID, assignmentID), or nil.
func (s *Snapshot) AssignmentStatus(studentID, assignmentID string) *AssignmentRecord {
	for i := range s.AssignmentRecords {
		r := &s.AssignmentRecords[i]
		if r.StudentID == studentID && r.AssignmentID == assignmentID {
			return r
		}
	}
	return nil
}

// Session returns the class-session record for (studentID, date), or nil.
func (s *Snapshot) Session(studentID, date string) *ClassSessionRecord {
	for i := range s.ClassSessionRecords {
		r := &s.ClassSessionRecords[i]
		if r.StudentID == studentID && r.Date == date {
			return r
		}
	}
	return nil
}

// TaskProgress returns the record for (studentID, minimalTaskID), or nil.
func (s *Snapshot) TaskProgress(studentID, minimalTaskID string) *MinimalTaskRecord {
	for i := range s.MinimalTaskRecords {
		r := &s.MinimalTaskRecords[i]
		if r.StudentID == studentID && r.MinimalTaskID == minimalTaskID {
			return r
		}
	}
	return nil
}
