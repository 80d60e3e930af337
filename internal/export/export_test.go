package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"classctl/internal/stats"
	"classctl/internal/store"
)

// buildFixture creates a class with two students, one attendance date,
// one assignment and one minimal task.
func buildFixture(t *testing.T) (*store.Store, *store.Class) {
	t.Helper()
	s, err := store.Open(&store.MemoryBackend{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	cl, err := s.AddClass("3A")
	if err != nil {
		t.Fatal(err)
	}
	ana, err := s.AddStudent("Ana Souza", cl.ID)
	if err != nil || ana == nil {
		t.Fatalf("AddStudent() = (%v, %v)", ana, err)
	}
	bia, err := s.AddStudent("Bia Lima", cl.ID)
	if err != nil || bia == nil {
		t.Fatalf("AddStudent() = (%v, %v)", bia, err)
	}

	if err := s.ToggleAttendance(ana.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	// Bia marked absent.
	if err := s.ToggleAttendance(bia.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleAttendance(bia.ID, "2024-03-01"); err != nil {
		t.Fatal(err)
	}

	a, err := s.AddAssignment(cl.ID, "Lista 1", "2024-03-01")
	if err != nil || a == nil {
		t.Fatalf("AddAssignment() = (%v, %v)", a, err)
	}
	if err := s.ToggleAssignmentRecord(ana.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.CycleAssignmentBonus(ana.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	task, err := s.AddMinimalTask(cl.ID, "Tarefa 1", "2024-03-01", 10)
	if err != nil || task == nil {
		t.Fatalf("AddMinimalTask() = (%v, %v)", task, err)
	}
	if err := s.SetMinimalTaskRecord(ana.ID, task.ID, 7); err != nil {
		t.Fatal(err)
	}
	return s, cl
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", cell, err)
	}
	return v
}

func TestAttendanceWorkbook(t *testing.T) {
	t.Parallel()

	s, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "chamada.xlsx")
	if err := AttendanceWorkbook(s.Snapshot(), stats.Query{}, path); err != nil {
		t.Fatalf("AttendanceWorkbook() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := cellValue(t, f, "Chamada", "A1"); got != "Aluno" {
		t.Errorf("A1: got %q, want %q", got, "Aluno")
	}
	if got := cellValue(t, f, "Chamada", "H1"); got != "01/03" {
		t.Errorf("H1 date header: got %q, want %q", got, "01/03")
	}
	// Ana: present on the single date, 100%.
	if got := cellValue(t, f, "Chamada", "A2"); got != "Ana Souza" {
		t.Errorf("A2: got %q", got)
	}
	if got := cellValue(t, f, "Chamada", "E2"); got != "100%" {
		t.Errorf("E2 percentage: got %q, want %q", got, "100%")
	}
	if got := cellValue(t, f, "Chamada", "H2"); got != "P" {
		t.Errorf("H2 mark: got %q, want P", got)
	}
	// Bia: marked absent.
	if got := cellValue(t, f, "Chamada", "H3"); got != "F" {
		t.Errorf("H3 mark: got %q, want F", got)
	}

	// Column widths stay inside [10, 40].
	for _, col := range []string{"A", "B", "H"} {
		w, err := f.GetColWidth("Chamada", col)
		if err != nil {
			t.Fatalf("GetColWidth(%s): %v", col, err)
		}
		if w < 10 || w > 40 {
			t.Errorf("column %s width %v outside [10, 40]", col, w)
		}
	}
}

func TestActivitiesWorkbookBonusAnnotation(t *testing.T) {
	t.Parallel()

	s, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "atividades.xlsx")
	if err := ActivitiesWorkbook(s.Snapshot(), stats.Query{}, path); err != nil {
		t.Fatalf("ActivitiesWorkbook() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := cellValue(t, f, "Atividades", "F1"); got != "01/03 - Lista 1" {
		t.Errorf("F1 header: got %q", got)
	}
	// Ana did the assignment and holds a yellow tag.
	if got := cellValue(t, f, "Atividades", "F2"); got != "Feito (Extra Amarelo)" {
		t.Errorf("F2: got %q, want %q", got, "Feito (Extra Amarelo)")
	}
	// Bia has no record: blank, not pending.
	if got := cellValue(t, f, "Atividades", "F3"); got != "" {
		t.Errorf("F3: got %q, want empty", got)
	}
}

func TestActivitiesWorkbookOtherClassDash(t *testing.T) {
	t.Parallel()

	s, _ := buildFixture(t)
	other, err := s.AddClass("2B")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddAssignment(other.ID, "Redação", "2024-03-02"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "atividades.xlsx")
	if err := ActivitiesWorkbook(s.Snapshot(), stats.Query{}, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	// Column G is the 2B assignment; 3A students show a dash there.
	if got := cellValue(t, f, "Atividades", "G2"); got != "—" {
		t.Errorf("G2: got %q, want dash", got)
	}
}

func TestTasksWorkbook(t *testing.T) {
	t.Parallel()

	s, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "tarefas.xlsx")
	if err := TasksWorkbook(s.Snapshot(), stats.Query{}, path); err != nil {
		t.Fatalf("TasksWorkbook() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if got := cellValue(t, f, "Tarefas", "C2"); got != "70%" {
		t.Errorf("C2 total: got %q, want %q", got, "70%")
	}
	if got := cellValue(t, f, "Tarefas", "D2"); got != "7/10" {
		t.Errorf("D2: got %q, want %q", got, "7/10")
	}
	if got := cellValue(t, f, "Tarefas", "D3"); got != "0/10" {
		t.Errorf("D3: got %q, want %q", got, "0/10")
	}
}

func TestClassDayWorkbook(t *testing.T) {
	t.Parallel()

	s, cl := buildFixture(t)
	path := filepath.Join(t.TempDir(), "turma.xlsx")
	if err := ClassDayWorkbook(s.Snapshot(), cl.ID, "2024-03-01", path); err != nil {
		t.Fatalf("ClassDayWorkbook() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if got := cellValue(t, f, "Turma", "A1"); got != "Turma 3A - 01/03" {
		t.Errorf("title: got %q", got)
	}
	if got := cellValue(t, f, "Turma", "B3"); got != "Chamada" {
		t.Errorf("B3 header: got %q", got)
	}
	if got := cellValue(t, f, "Turma", "B4"); got != "P" {
		t.Errorf("B4: got %q, want P", got)
	}
	if got := cellValue(t, f, "Turma", "C4"); got != "Feito (Extra Amarelo)" {
		t.Errorf("C4: got %q", got)
	}

	if err := ClassDayWorkbook(s.Snapshot(), "missing", "2024-03-01", path); err == nil {
		t.Error("unknown class should error")
	}
}
