// Package export writes the summary views to .xlsx workbooks. The column
// sets mirror the on-screen tables: attendance adds participation and
// extra-point columns, activities annotate bonus tags in the cell text,
// minimal tasks show "done/total" per task.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"classctl/internal/stats"
	"classctl/internal/store"
)

const (
	minColWidth = 10
	maxColWidth = 40
)

// sheet accumulates rows and writes them with auto-sized columns.
// Non-name columns (everything after the first) are center-aligned.
type sheet struct {
	file *excelize.File
	name string
	rows [][]any
}

func newSheet(name string) *sheet {
	f := excelize.NewFile()
	// The default sheet is renamed rather than appending a second one.
	_ = f.SetSheetName("Sheet1", name)
	return &sheet{file: f, name: name}
}

func (s *sheet) add(row ...any) {
	s.rows = append(s.rows, row)
}

// write flushes rows, sizes columns to the longest cell (clamped to
// [10, 40] characters) and saves the workbook.
func (s *sheet) write(path string) error {
	cols := 0
	for _, row := range s.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]float64, cols)
	for r, row := range s.rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := s.file.SetCellValue(s.name, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
			if w := float64(len(fmt.Sprint(v))) + 2; w > widths[c] {
				widths[c] = w
			}
		}
	}

	for c := 0; c < cols; c++ {
		w := widths[c]
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := s.file.SetColWidth(s.name, col, col, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if cols > 1 && len(s.rows) > 0 {
		centered, err := s.file.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("create style: %w", err)
		}
		first, _ := excelize.CoordinatesToCellName(2, 1)
		last, _ := excelize.CoordinatesToCellName(cols, len(s.rows))
		if err := s.file.SetCellStyle(s.name, first, last, centered); err != nil {
			return fmt.Errorf("apply style: %w", err)
		}
	}

	if err := s.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return s.file.Close()
}

// formatDate renders "2006-01-02" as "02/01" for column headers.
func formatDate(d string) string {
	if len(d) != 10 {
		return d
	}
	return d[8:10] + "/" + d[5:7]
}

// AttendanceWorkbook writes the attendance summary: one row per selected
// student, counting columns, percentage, participation figures and one
// P/F column per attendance date.
func AttendanceWorkbook(snap store.Snapshot, q stats.Query, path string) error {
	dates := stats.AttendanceDates(snap, q)

	ws := newSheet("Chamada")
	header := []any{"Aluno", "Turma", "Presença", "Faltas", "% Presença", "Participações", "Pontos Extras"}
	for _, d := range dates {
		header = append(header, formatDate(d))
	}
	ws.add(header...)

	for _, st := range stats.Students(snap, q) {
		present, total := stats.AttendanceCounts(snap, q, st.ID)
		part := stats.ParticipationSummary(snap, q, st.ID)

		pctCell := ""
		if pct, ok := stats.StudentAttendance(snap, q, st.ID); ok {
			pctCell = fmt.Sprintf("%d%%", pct)
		}

		row := []any{st.Name, st.ClassName, present, total - present, pctCell, part.Participations, part.ExtraPoints}
		for _, d := range dates {
			switch rec := snap.Attendance(st.ID, d); {
			case rec == nil:
				row = append(row, "")
			case rec.Present:
				row = append(row, "P")
			default:
				row = append(row, "F")
			}
		}
		ws.add(row...)
	}
	return ws.write(path)
}

// bonusSuffix is the cell-text annotation for a record's bonus tag.
func bonusSuffix(tag store.BonusTag) string {
	switch tag {
	case store.BonusYellow:
		return " (Extra Amarelo)"
	case store.BonusGreen:
		return " (Extra Verde)"
	default:
		return ""
	}
}

// ActivitiesWorkbook writes the assignment summary: one column per
// assignment in range, with done/pending state and the bonus annotation in
// the cell text. Columns of other classes' assignments render "—".
func ActivitiesWorkbook(snap store.Snapshot, q stats.Query, path string) error {
	acts := stats.Assignments(snap, q)

	ws := newSheet("Atividades")
	header := []any{"Aluno", "Turma", "Entregues", "Pendentes", "% Entrega"}
	for _, a := range acts {
		header = append(header, formatDate(a.Date)+" - "+a.Name)
	}
	ws.add(header...)

	for _, st := range stats.Students(snap, q) {
		done, total := stats.ActivityCounts(snap, q, st.ID)
		pctCell := ""
		if pct, ok := stats.StudentActivities(snap, q, st.ID); ok {
			pctCell = fmt.Sprintf("%d%%", pct)
		}
		cl := snap.ClassByName(st.ClassName)

		row := []any{st.Name, st.ClassName, done, total - done, pctCell}
		for _, a := range acts {
			if cl == nil || a.ClassID != cl.ID {
				row = append(row, "—")
				continue
			}
			rec := snap.AssignmentStatus(st.ID, a.ID)
			switch {
			case rec == nil:
				row = append(row, "")
			case rec.Done:
				row = append(row, "Feito"+bonusSuffix(rec.BonusTag))
			default:
				row = append(row, "Pendente"+bonusSuffix(rec.BonusTag))
			}
		}
		ws.add(row...)
	}
	return ws.write(path)
}

// TasksWorkbook writes the minimal-task summary: a total percentage plus
// one "done/total" column per task in range.
func TasksWorkbook(snap store.Snapshot, q stats.Query, path string) error {
	tasks := stats.MinimalTasks(snap, q)

	ws := newSheet("Tarefas")
	header := []any{"Aluno", "Turma", "% Total"}
	for _, task := range tasks {
		header = append(header, formatDate(task.Date)+" - "+task.Name)
	}
	ws.add(header...)

	for _, st := range stats.Students(snap, q) {
		pctCell := "—"
		if pct, ok := stats.StudentMinimalTasks(snap, q, st.ID); ok {
			pctCell = fmt.Sprintf("%d%%", pct)
		}
		cl := snap.ClassByName(st.ClassName)

		row := []any{st.Name, st.ClassName, pctCell}
		for _, task := range tasks {
			if cl == nil || task.ClassID != cl.ID {
				row = append(row, "—")
				continue
			}
			doneCount := 0
			if rec := snap.TaskProgress(st.ID, task.ID); rec != nil {
				doneCount = rec.QuestionsDone
			}
			row = append(row, fmt.Sprintf("%d/%d", doneCount, task.TotalQuestions))
		}
		ws.add(row...)
	}
	return ws.write(path)
}

// ClassDayWorkbook writes one class's combined roll-call sheet for a
// single date: a title row, then per student the attendance mark and the
// state of each same-day assignment.
func ClassDayWorkbook(snap store.Snapshot, classID, date, path string) error {
	cl := snap.ClassByID(classID)
	if cl == nil {
		return fmt.Errorf("unknown class %q", classID)
	}

	var dayActs []store.Assignment
	for _, a := range snap.Assignments {
		if a.ClassID == classID && a.Date == date {
			dayActs = append(dayActs, a)
		}
	}

	ws := newSheet("Turma")
	ws.add(fmt.Sprintf("Turma %s - %s", cl.Name, formatDate(date)))
	ws.add()
	header := []any{"Aluno", "Chamada"}
	for _, a := range dayActs {
		header = append(header, a.Name)
	}
	ws.add(header...)

	for _, st := range snap.StudentsInClass(cl.Name) {
		row := []any{st.Name}
		switch rec := snap.Attendance(st.ID, date); {
		case rec == nil:
			row = append(row, "")
		case rec.Present:
			row = append(row, "P")
		default:
			row = append(row, "F")
		}
		for _, a := range dayActs {
			rec := snap.AssignmentStatus(st.ID, a.ID)
			switch {
			case rec == nil:
				row = append(row, "")
			case rec.Done:
				row = append(row, "Feito"+bonusSuffix(rec.BonusTag))
			default:
				row = append(row, "Pendente"+bonusSuffix(rec.BonusTag))
			}
		}
		ws.add(row...)
	}
	return ws.write(path)
}
