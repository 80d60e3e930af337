package store

import (
	"encoding/json"
	"errors"
	"testing"
)

// newTestStore opens a store over an in-memory backend.
func newTestStore(t *testing.T, opts ...Option) (*Store, *MemoryBackend) {
	t.Helper()
	backend := &MemoryBackend{}
	s, err := Open(backend, opts...)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s, backend
}

func mustAddClass(t *testing.T, s *Store, name string) *Class {
	t.Helper()
	cl, err := s.AddClass(name)
	if err != nil {
		t.Fatalf("AddClass(%q) error: %v", name, err)
	}
	return cl
}

func mustAddStudent(t *testing.T, s *Store, name, classID string) *Student {
	t.Helper()
	st, err := s.AddStudent(name, classID)
	if err != nil {
		t.Fatalf("AddStudent(%q) error: %v", name, err)
	}
	if st == nil {
		t.Fatalf("AddStudent(%q) unexpectedly refused", name)
	}
	return st
}

func TestOpenEmptyBackend(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	snap := s.Snapshot()
	if snap.Students == nil || snap.Classes == nil || snap.AttendanceRecords == nil {
		t.Error("Open() should normalize collections to empty, not nil")
	}
	if len(snap.Students) != 0 {
		t.Errorf("expected empty store, got %d students", len(snap.Students))
	}
}

func TestOpenMalformedSnapshot(t *testing.T) {
	t.Parallel()

	backend := &MemoryBackend{data: []byte("{not json")}
	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open() should recover from malformed snapshot, got %v", err)
	}
	if len(s.Snapshot().Classes) != 0 {
		t.Error("malformed snapshot should normalize to empty")
	}
}

func TestOpenPartialSnapshot(t *testing.T) {
	t.Parallel()

	// Legacy blob with only two collections present.
	backend := &MemoryBackend{data: []byte(`{"students":[],"classes":[{"id":"c1","name":"3A"}]}`)}
	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	snap := s.Snapshot()
	if snap.AssignmentRecords == nil || snap.MinimalTaskRecords == nil || snap.ClassSessionRecords == nil {
		t.Error("missing collections should normalize to empty lists")
	}
	if got := len(snap.Classes); got != 1 {
		t.Errorf("classes: got %d, want 1", got)
	}
}

func TestAddClassValidation(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	if _, err := s.AddClass("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: got %v, want ErrEmptyName", err)
	}

	mustAddClass(t, s, "3A")
	if _, err := s.AddClass("3a"); !errors.Is(err, ErrClassExists) {
		t.Errorf("case-insensitive duplicate: got %v, want ErrClassExists", err)
	}
	if got := len(s.Snapshot().Classes); got != 1 {
		t.Errorf("classes: got %d, want 1", got)
	}
}

func TestAddStudentCopiesClassName(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "  Ana Souza  ", cl.ID)

	if st.Name != "Ana Souza" {
		t.Errorf("name not trimmed: %q", st.Name)
	}
	if st.ClassName != "3A" {
		t.Errorf("ClassName: got %q, want %q", st.ClassName, "3A")
	}
}

func TestAddStudentSilentNoOp(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")

	if st, err := s.AddStudent("Ana", "missing-class"); err != nil || st != nil {
		t.Errorf("unknown class: got (%v, %v), want (nil, nil)", st, err)
	}
	if st, err := s.AddStudent("   ", cl.ID); err != nil || st != nil {
		t.Errorf("blank name: got (%v, %v), want (nil, nil)", st, err)
	}
	if got := len(s.Snapshot().Students); got != 0 {
		t.Errorf("students: got %d, want 0", got)
	}
}

func TestAddAssignmentAndTaskSilentNoOp(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")

	if a, err := s.AddAssignment(cl.ID, "   ", "2026-03-01"); err != nil || a != nil {
		t.Errorf("blank assignment name: got (%v, %v), want (nil, nil)", a, err)
	}
	if a, err := s.AddAssignment("missing-class", "Prova", "2026-03-01"); err != nil || a != nil {
		t.Errorf("unknown class: got (%v, %v), want (nil, nil)", a, err)
	}
	if task, err := s.AddMinimalTask(cl.ID, "   ", "2026-03-01", 10); err != nil || task != nil {
		t.Errorf("blank task name: got (%v, %v), want (nil, nil)", task, err)
	}
	if task, err := s.AddMinimalTask(cl.ID, "Lista", "2026-03-01", 0); err != nil || task != nil {
		t.Errorf("zero questions: got (%v, %v), want (nil, nil)", task, err)
	}

	snap := s.Snapshot()
	if got := len(snap.Assignments) + len(snap.MinimalTasks); got != 0 {
		t.Errorf("created entities: got %d, want 0", got)
	}
}

func TestToggleAttendanceFindOrCreate(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "Ana", cl.ID)

	for i := 0; i < 5; i++ {
		if err := s.ToggleAttendance(st.ID, "2024-03-01"); err != nil {
			t.Fatalf("ToggleAttendance() error: %v", err)
		}
	}

	snap := s.Snapshot()
	if got := len(snap.AttendanceRecords); got != 1 {
		t.Fatalf("records after 5 toggles: got %d, want 1", got)
	}
	// Odd number of toggles: created true, flipped 4 times.
	if !snap.AttendanceRecords[0].Present {
		t.Error("expected present=true after 5 toggles")
	}
}

func TestBonusTagCycle(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "Ana", cl.ID)
	a, err := s.AddAssignment(cl.ID, "Lista 1", "2024-03-01")
	if err != nil || a == nil {
		t.Fatalf("AddAssignment() = (%v, %v)", a, err)
	}

	want := []BonusTag{BonusYellow, BonusGreen, BonusNone}
	for i, tag := range want {
		if err := s.CycleAssignmentBonus(st.ID, a.ID); err != nil {
			t.Fatalf("CycleAssignmentBonus() error: %v", err)
		}
		snap := s.Snapshot()
		rec := snap.AssignmentStatus(st.ID, a.ID)
		if rec == nil {
			t.Fatal("record missing after cycle")
		}
		if rec.BonusTag != tag {
			t.Errorf("press %d: tag %q, want %q", i+1, rec.BonusTag, tag)
		}
		if rec.Done {
			t.Errorf("press %d: done flag changed by bonus cycle", i+1)
		}
	}
	if got := len(s.Snapshot().AssignmentRecords); got != 1 {
		t.Errorf("records: got %d, want 1", got)
	}
}

func TestBonusAndToggleShareRecord(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "Ana", cl.ID)
	a, _ := s.AddAssignment(cl.ID, "Lista 1", "2024-03-01")

	if err := s.CycleAssignmentBonus(st.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleAssignmentRecord(st.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if got := len(snap.AssignmentRecords); got != 1 {
		t.Fatalf("records: got %d, want 1", got)
	}
	rec := snap.AssignmentRecords[0]
	if !rec.Done || rec.BonusTag != BonusYellow {
		t.Errorf("got done=%v tag=%q, want done=true tag=yellow", rec.Done, rec.BonusTag)
	}
}

func TestRemoveStudentCascades(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "Ana", cl.ID)
	a, _ := s.AddAssignment(cl.ID, "Lista 1", "2024-03-01")
	task, _ := s.AddMinimalTask(cl.ID, "Tarefa 1", "2024-03-01", 10)

	if err := s.ToggleAttendance(st.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleAssignmentRecord(st.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleParticipation(st.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMinimalTaskRecord(st.ID, task.ID, 4); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveStudent(st.ID); err != nil {
		t.Fatalf("RemoveStudent() error: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Students) != 0 {
		t.Error("student not removed")
	}
	if len(snap.AttendanceRecords) != 0 || len(snap.AssignmentRecords) != 0 ||
		len(snap.ClassSessionRecords) != 0 || len(snap.MinimalTaskRecords) != 0 {
		t.Errorf("dangling records after cascade: att=%d act=%d sess=%d task=%d",
			len(snap.AttendanceRecords), len(snap.AssignmentRecords),
			len(snap.ClassSessionRecords), len(snap.MinimalTaskRecords))
	}
}

func TestRemoveClassScope(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a3 := mustAddClass(t, s, "3A")
	b3 := mustAddClass(t, s, "3B")
	ana := mustAddStudent(t, s, "Ana", a3.ID)
	bia := mustAddStudent(t, s, "Bia", b3.ID)
	actA, _ := s.AddAssignment(a3.ID, "Prova 1", "2024-03-01")
	actB, _ := s.AddAssignment(b3.ID, "Prova 1", "2024-03-01")
	if err := s.ToggleAssignmentRecord(ana.ID, actA.ID); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveClass(a3.ID); err != nil {
		t.Fatalf("RemoveClass() error: %v", err)
	}

	snap := s.Snapshot()
	if snap.StudentByID(ana.ID) != nil {
		t.Error("Ana should be removed with her class")
	}
	if snap.StudentByID(bia.ID) == nil {
		t.Error("Bia belongs to 3B and must survive")
	}
	if snap.AssignmentByID(actA.ID) != nil {
		t.Error("3A assignment should be removed")
	}
	if snap.AssignmentByID(actB.ID) == nil {
		t.Error("3B assignment must survive")
	}
	if got := len(snap.AssignmentRecords); got != 0 {
		t.Errorf("orphaned assignment records: %d", got)
	}
}

func TestSessionFlagsIndependent(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "Ana", cl.ID)

	if err := s.ToggleParticipation(st.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleExtraPoint(st.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if got := len(snap.ClassSessionRecords); got != 1 {
		t.Fatalf("records: got %d, want 1 shared record", got)
	}
	rec := snap.ClassSessionRecords[0]
	if !rec.Participated || !rec.ExtraPoint {
		t.Errorf("got participated=%v extra=%v, want both true", rec.Participated, rec.ExtraPoint)
	}

	if err := s.ToggleParticipation(st.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	rec = s.Snapshot().ClassSessionRecords[0]
	if rec.Participated {
		t.Error("participation should be flipped off")
	}
	if !rec.ExtraPoint {
		t.Error("extra point must be unaffected by participation toggle")
	}
}

func TestSetMinimalTaskRecordClamps(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	st := mustAddStudent(t, s, "Ana", cl.ID)
	task, _ := s.AddMinimalTask(cl.ID, "Tarefa 1", "2024-03-01", 10)

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"negative", -3, 0},
		{"within", 7, 7},
		{"above total", 99, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.SetMinimalTaskRecord(st.ID, task.ID, tc.in); err != nil {
				t.Fatalf("SetMinimalTaskRecord() error: %v", err)
			}
			snap := s.Snapshot()
			rec := snap.TaskProgress(st.ID, task.ID)
			if rec == nil {
				t.Fatal("record missing")
			}
			if rec.QuestionsDone != tc.want {
				t.Errorf("questionsDone: got %d, want %d", rec.QuestionsDone, tc.want)
			}
		})
	}
	if got := len(s.Snapshot().MinimalTaskRecords); got != 1 {
		t.Errorf("records: got %d, want 1", got)
	}
}

func TestAssignmentMaterialization(t *testing.T) {
	t.Parallel()

	t.Run("lazy by default", func(t *testing.T) {
		s, _ := newTestStore(t)
		cl := mustAddClass(t, s, "3A")
		mustAddStudent(t, s, "Ana", cl.ID)
		mustAddStudent(t, s, "Bia", cl.ID)
		if _, err := s.AddAssignment(cl.ID, "Lista 1", "2024-03-01"); err != nil {
			t.Fatal(err)
		}
		if got := len(s.Snapshot().AssignmentRecords); got != 0 {
			t.Errorf("lazy mode created %d records, want 0", got)
		}
	})

	t.Run("eager materializes pending records", func(t *testing.T) {
		s, _ := newTestStore(t, WithMaterialization(true))
		cl := mustAddClass(t, s, "3A")
		ana := mustAddStudent(t, s, "Ana", cl.ID)
		mustAddStudent(t, s, "Bia", cl.ID)
		a, err := s.AddAssignment(cl.ID, "Lista 1", "2024-03-01")
		if err != nil {
			t.Fatal(err)
		}
		snap := s.Snapshot()
		if got := len(snap.AssignmentRecords); got != 2 {
			t.Fatalf("eager mode created %d records, want 2", got)
		}
		rec := snap.AssignmentStatus(ana.ID, a.ID)
		if rec == nil || rec.Done {
			t.Error("eager record should exist with done=false")
		}

		// A toggle must reuse the materialized record, not add another.
		if err := s.ToggleAssignmentRecord(ana.ID, a.ID); err != nil {
			t.Fatal(err)
		}
		snap = s.Snapshot()
		if got := len(snap.AssignmentRecords); got != 2 {
			t.Errorf("toggle after materialization duplicated records: %d", got)
		}
		if !snap.AssignmentStatus(ana.ID, a.ID).Done {
			t.Error("toggle should flip materialized record to done")
		}
	})
}

func TestMutationsPersistFullSnapshot(t *testing.T) {
	t.Parallel()

	s, backend := newTestStore(t)
	cl := mustAddClass(t, s, "3A")
	mustAddStudent(t, s, "Ana", cl.ID)

	var persisted Snapshot
	if err := json.Unmarshal(backend.data, &persisted); err != nil {
		t.Fatalf("persisted blob is not valid JSON: %v", err)
	}
	if len(persisted.Students) != 1 || len(persisted.Classes) != 1 {
		t.Errorf("persisted snapshot incomplete: %d students, %d classes",
			len(persisted.Students), len(persisted.Classes))
	}
}

func TestFailedPersistLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	s, backend := newTestStore(t)
	cl := mustAddClass(t, s, "3A")

	backend.FailSaves = true
	if _, err := s.AddStudent("Ana", cl.ID); err == nil {
		t.Fatal("expected persistence error")
	}
	if got := len(s.Snapshot().Students); got != 0 {
		t.Errorf("failed mutation left %d students in memory, want 0", got)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/nested/data.json"
	backend := NewFileBackend(path)

	if data, err := backend.Load(); err != nil || data != nil {
		t.Fatalf("Load() on missing file: got (%v, %v), want (nil, nil)", data, err)
	}

	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	mustAddClass(t, s, "3A")

	reopened, err := Open(NewFileBackend(path))
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if got := len(reopened.Snapshot().Classes); got != 1 {
		t.Errorf("classes after reopen: got %d, want 1", got)
	}
}
