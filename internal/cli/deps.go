package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"classctl/internal/config"
	"classctl/internal/stats"
	"classctl/internal/store"
)

// Dependencies is the composition root: the only place concrete types are
// instantiated and wired together. Commands reach everything through the
// package-level deps variable.
type Dependencies struct {
	Config   *config.Config
	Store    *store.Store
	Logger   *slog.Logger
	Collator *collate.Collator
}

var deps *Dependencies

// initDependencies loads the configuration, opens the store over the file
// backend and prepares the name collator. Called once per invocation from
// the root command's PersistentPreRunE.
func initDependencies(verbose bool) error {
	if deps != nil {
		return nil
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	st, err := store.Open(
		store.NewFileBackend(cfg.DataPath(dir)),
		store.WithLogger(logger),
		store.WithMaterialization(cfg.MaterializeRecordsOnCreate),
	)
	if err != nil {
		return fmt.Errorf("open data store: %w", err)
	}

	tag := language.Make(cfg.Locale)
	if tag == language.Und {
		tag = language.BrazilianPortuguese
	}

	deps = &Dependencies{
		Config:   cfg,
		Store:    st,
		Logger:   logger,
		Collator: collate.New(tag, collate.IgnoreCase),
	}
	return nil
}

// currentQuery builds the stats query from the shared filter flags.
func currentQuery() (stats.Query, error) {
	for _, d := range []string{flagFrom, flagTo} {
		if d != "" {
			if _, err := parseDate(d); err != nil {
				return stats.Query{}, err
			}
		}
	}
	return stats.Query{Class: flagClass, From: flagFrom, To: flagTo}, nil
}

// sortStudents orders students by collated name, the way a printed class
// roster would. Snapshot order is preserved for equal names.
func sortStudents(students []store.Student) []store.Student {
	out := append([]store.Student{}, students...)
	sort.SliceStable(out, func(i, j int) bool {
		return deps.Collator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// resolveClass accepts a class name (case-insensitive) or id.
func resolveClass(snap store.Snapshot, arg string) (*store.Class, error) {
	if cl := snap.ClassByName(arg); cl != nil {
		return cl, nil
	}
	if cl := snap.ClassByID(arg); cl != nil {
		return cl, nil
	}
	return nil, fmt.Errorf("turma %q não encontrada", arg)
}

// resolveStudent accepts a student id or a unique student name.
func resolveStudent(snap store.Snapshot, arg string) (*store.Student, error) {
	if st := snap.StudentByID(arg); st != nil {
		return st, nil
	}
	var matches []*store.Student
	for i := range snap.Students {
		if snap.Students[i].Name == arg {
			matches = append(matches, &snap.Students[i])
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("aluno %q não encontrado", arg)
	default:
		return nil, fmt.Errorf("nome %q é ambíguo; use o id", arg)
	}
}

// resolveAssignment accepts an assignment id, or a name unique within the
// given class.
func resolveAssignment(snap store.Snapshot, classID, arg string) (*store.Assignment, error) {
	if a := snap.AssignmentByID(arg); a != nil {
		return a, nil
	}
	var matches []*store.Assignment
	for i := range snap.Assignments {
		a := &snap.Assignments[i]
		if a.ClassID == classID && a.Name == arg {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("atividade %q não encontrada", arg)
	default:
		return nil, fmt.Errorf("atividade %q é ambígua; use o id", arg)
	}
}

// resolveTask accepts a minimal-task id, or a name unique within the class.
func resolveTask(snap store.Snapshot, classID, arg string) (*store.MinimalTask, error) {
	if t := snap.MinimalTaskByID(arg); t != nil {
		return t, nil
	}
	var matches []*store.MinimalTask
	for i := range snap.MinimalTasks {
		t := &snap.MinimalTasks[i]
		if t.ClassID == classID && t.Name == arg {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("tarefa %q não encontrada", arg)
	default:
		return nil, fmt.Errorf("tarefa %q é ambígua; use o id", arg)
	}
}
