package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"classctl/internal/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregated views over the recorded data",
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.AddCommand(
		newSummaryStudentsCmd(),
		newSummaryClassesCmd(),
		newSummaryRankingCmd(),
		newSummaryParticipationCmd(),
	)
}

func newSummaryStudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Per-student attendance, activity and task percentages",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()

			rows := make([][]string, 0)
			for _, st := range sortStudents(stats.Students(snap, q)) {
				att, attOK := stats.StudentAttendance(snap, q, st.ID)
				act, actOK := stats.StudentActivities(snap, q, st.ID)
				tasks, tasksOK := stats.StudentMinimalTasks(snap, q, st.ID)
				rows = append(rows, []string{
					st.Name,
					st.ClassName,
					pctCell(att, attOK),
					pctCell(act, actOK),
					pctCell(tasks, tasksOK),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhum aluno selecionado."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Aluno", "Turma", "Presença", "Atividades", "Tarefas"}, rows))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func newSummaryClassesCmd() *cobra.Command {
	var pooled bool
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Per-class attendance and activity percentages",
		Long: `Compares classes under one of two aggregation policies. The default
averages each student's own percentage, so every student weighs the
same. With --pooled the raw marks are pooled before dividing, so
students with more recorded dates weigh more. The two disagree
whenever per-student denominators differ.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()

			rows := make([][]string, 0, len(snap.Classes))
			if pooled {
				for _, cl := range snap.Classes {
					att, act := stats.PooledClassSummary(snap, q, cl.Name)
					n := len(snap.StudentsInClass(cl.Name))
					rows = append(rows, []string{cl.Name, strconv.Itoa(n), pctCell(att, true), pctCell(act, true)})
				}
			} else {
				for _, c := range stats.CompareClasses(snap, q) {
					rows = append(rows, []string{c.Class, strconv.Itoa(c.Students), pctCell(c.Attendance, true), pctCell(c.Activities, true)})
				}
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhuma turma registrada."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Turma", "Alunos", "Presença", "Atividades"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&pooled, "pooled", false, "pool raw marks instead of averaging student percentages")
	addQueryFlags(cmd)
	return cmd
}

func newSummaryRankingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Students ordered by attendance plus activity percentage",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()

			rows := make([][]string, 0)
			for i, e := range stats.Ranking(snap, q) {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					e.Student.Name,
					e.Student.ClassName,
					pctCell(e.Attendance, true),
					pctCell(e.Activities, true),
					strconv.Itoa(e.Score()),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhum aluno selecionado."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Aluno", "Turma", "Presença", "Atividades", "Pontuação"}, rows))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func newSummaryParticipationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participation",
		Short: "Participations and extra points per class day",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()

			rows := make([][]string, 0)
			for _, st := range sortStudents(stats.Students(snap, q)) {
				p := stats.ParticipationSummary(snap, q, st.ID)
				ratio := "—"
				if p.ClassDays > 0 {
					ratio = fmt.Sprintf("%d/%d", p.Participations, p.ClassDays)
				}
				rows = append(rows, []string{
					st.Name,
					st.ClassName,
					ratio,
					strconv.Itoa(p.ExtraPoints),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhum aluno selecionado."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Aluno", "Turma", "Participações", "Pontos Extras"}, rows))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}
