// Package roster imports students in batch from two-column CSV text
// (name, class), resolving classes case-insensitively and creating the
// missing ones on the fly.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"classctl/internal/store"
)

// ErrBadHeader is returned when the header row is missing the "nome" or
// "turma" column. It blocks the whole import: no per-row preview is
// produced in that case.
var ErrBadHeader = errors.New(`cabeçalho inválido: a primeira linha deve conter "nome" e "turma"`)

// Row is one parsed CSV line. Invalid rows are kept for the preview with
// their error message rather than silently dropped.
type Row struct {
	Name  string
	Class string
	Err   string
}

// Valid reports whether the row passed per-row validation.
func (r Row) Valid() bool { return r.Err == "" }

// Parse reads CSV text with a required header row. Column positions are
// resolved by header name (case-insensitive), so extra columns and any
// column order are accepted.
func Parse(text string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrBadHeader
	}

	nameIdx, classIdx := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "nome":
			nameIdx = i
		case "turma":
			classIdx = i
		}
	}
	if nameIdx < 0 || classIdx < 0 {
		return nil, ErrBadHeader
	}

	var rows []Row
	for _, rec := range records[1:] {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row := Row{}
		if nameIdx < len(rec) {
			row.Name = strings.TrimSpace(rec[nameIdx])
		}
		if classIdx < len(rec) {
			row.Class = strings.TrimSpace(rec[classIdx])
		}
		switch {
		case row.Name == "":
			row.Err = "nome em branco"
		case row.Class == "":
			row.Err = "turma em branco"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Import inserts the valid rows into the store. Existing classes are
// matched by lower-cased name; a class created for one row is recorded in
// the in-memory map immediately, so later rows naming it with different
// casing reuse it instead of attempting a duplicate create. Rows whose
// class creation fails are skipped without being counted.
//
// Returns the number of students actually added. A persistence error
// aborts the batch and reports how many rows landed before it.
func Import(st *store.Store, rows []Row) (int, error) {
	classIDs := map[string]string{}
	for _, cl := range st.Snapshot().Classes {
		classIDs[strings.ToLower(cl.Name)] = cl.ID
	}

	added := 0
	for _, row := range rows {
		if !row.Valid() {
			continue
		}
		key := strings.ToLower(row.Class)
		classID, found := classIDs[key]
		if !found {
			cl, err := st.AddClass(row.Class)
			if errors.Is(err, store.ErrClassExists) || errors.Is(err, store.ErrEmptyName) {
				continue
			}
			if err != nil {
				return added, fmt.Errorf("create class %q: %w", row.Class, err)
			}
			classID = cl.ID
			classIDs[key] = classID
		}

		student, err := st.AddStudent(row.Name, classID)
		if err != nil {
			return added, fmt.Errorf("add student %q: %w", row.Name, err)
		}
		if student != nil {
			added++
		}
	}
	return added, nil
}
