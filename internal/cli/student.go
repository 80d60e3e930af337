package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage students",
}

func init() {
	rootCmd.AddCommand(studentCmd)
	studentCmd.AddCommand(
		newStudentAddCmd(),
		newStudentRemoveCmd(),
		newStudentListCmd(),
	)
}

func newStudentAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <class>",
		Short: "Enroll a student in a class",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cl, err := resolveClass(deps.Store.Snapshot(), args[1])
			if err != nil {
				return err
			}
			st, err := deps.Store.AddStudent(args[0], cl.ID)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("informe o nome do aluno")
			}
			fmt.Fprintln(out, successLine(fmt.Sprintf("%s matriculado(a) na turma %s", st.Name, st.ClassName)))
			return nil
		},
	}
}

func newStudentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name|id>",
		Short: "Remove a student and all their records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st, err := resolveStudent(deps.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			ok, err := confirmRemoval(fmt.Sprintf("Remover %s e todos os seus registros?", st.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, mutedStyle.Render("cancelado"))
				return nil
			}

			if err := deps.Store.RemoveStudent(st.ID); err != nil {
				return err
			}
			fmt.Fprintln(out, successLine(fmt.Sprintf("%s removido(a)", st.Name)))
			return nil
		},
	}
}

func newStudentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List students in collated name order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			q, err := currentQuery()
			if err != nil {
				return err
			}

			snap := deps.Store.Snapshot()
			var students = snap.Students
			if q.Class != "" && q.Class != "all" {
				cl, err := resolveClass(snap, q.Class)
				if err != nil {
					return err
				}
				students = snap.StudentsInClass(cl.Name)
			}
			if len(students) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("nenhum aluno encontrado"))
				return nil
			}

			rows := make([][]string, 0, len(students))
			for _, st := range sortStudents(students) {
				rows = append(rows, []string{st.Name, st.ClassName, st.ID})
			}
			fmt.Fprintln(out, renderTable([]string{"Aluno", "Turma", "ID"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&flagClass, "class", "all", "class name filter, or \"all\"")
	return cmd
}
