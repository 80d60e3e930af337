package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"classctl/internal/store"
)

// seedDeps wires the package dependencies over an in-memory backend so a
// command body can run without config files or a terminal. Tests using it
// share the package-level deps variable and must not run in parallel.
func seedDeps(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(&store.MemoryBackend{})
	if err != nil {
		t.Fatal(err)
	}
	prev := deps
	deps = &Dependencies{
		Store:    s,
		Collator: collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
	}
	t.Cleanup(func() { deps = prev })
	return s
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestActivityAddRejectsBlankName(t *testing.T) {
	s := seedDeps(t)
	if _, err := s.AddClass("3A"); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, newActivityAddCmd(), "3A", "   ")
	if err == nil {
		t.Fatal("blank activity name should produce an error")
	}
	if !strings.Contains(err.Error(), "nome da atividade") {
		t.Errorf("error %q should name the missing field", err)
	}

	snap := deps.Store.Snapshot()
	if got := len(snap.Assignments); got != 0 {
		t.Errorf("assignments: got %d, want 0", got)
	}
}

func TestTaskAddRejectsBlankName(t *testing.T) {
	s := seedDeps(t)
	if _, err := s.AddClass("3A"); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, newTaskAddCmd(), "3A", "   ", "10")
	if err == nil {
		t.Fatal("blank task name should produce an error")
	}
	if !strings.Contains(err.Error(), "nome da tarefa") {
		t.Errorf("error %q should name the missing field", err)
	}

	snap := deps.Store.Snapshot()
	if got := len(snap.MinimalTasks); got != 0 {
		t.Errorf("minimal tasks: got %d, want 0", got)
	}
}
