package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"classctl/internal/store"
)

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Manage classes",
}

func init() {
	rootCmd.AddCommand(classCmd)
	classCmd.AddCommand(
		newClassAddCmd(),
		newClassRemoveCmd(),
		newClassListCmd(),
	)
}

func newClassAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cl, err := deps.Store.AddClass(args[0])
			switch {
			case errors.Is(err, store.ErrClassExists):
				return fmt.Errorf("turma %q já existe", args[0])
			case errors.Is(err, store.ErrEmptyName):
				return fmt.Errorf("informe o nome da turma")
			case err != nil:
				return err
			}
			fmt.Fprintln(out, successLine(fmt.Sprintf("turma %s criada (id %s)", cl.Name, cl.ID)))
			return nil
		},
	}
}

func newClassRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a class, its students, assignments and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			snap := deps.Store.Snapshot()
			cl, err := resolveClass(snap, args[0])
			if err != nil {
				return err
			}

			n := len(snap.StudentsInClass(cl.Name))
			ok, err := confirmRemoval(fmt.Sprintf("Remover a turma %s e seus %d aluno(s)?", cl.Name, n))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, mutedStyle.Render("cancelado"))
				return nil
			}

			if err := deps.Store.RemoveClass(cl.ID); err != nil {
				return err
			}
			fmt.Fprintln(out, successLine(fmt.Sprintf("turma %s removida", cl.Name)))
			return nil
		},
	}
}

func newClassListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			snap := deps.Store.Snapshot()
			if len(snap.Classes) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("nenhuma turma cadastrada"))
				return nil
			}

			rows := make([][]string, 0, len(snap.Classes))
			for _, cl := range snap.Classes {
				rows = append(rows, []string{
					cl.Name,
					fmt.Sprint(len(snap.StudentsInClass(cl.Name))),
					cl.ID,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Turma", "Alunos", "ID"}, rows))
			return nil
		},
	}
}
