package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"classctl/internal/stats"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage minimal tasks and question counts",
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(
		newTaskAddCmd(),
		newTaskRemoveCmd(),
		newTaskListCmd(),
		newTaskSetCmd(),
	)
}

func newTaskAddCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "add <class> <name> <total-questions>",
		Short: "Create a minimal task for a class",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[2])
			if err != nil || total <= 0 {
				return fmt.Errorf("total de questões inválido %q (use um inteiro positivo)", args[2])
			}
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			cl, err := resolveClass(deps.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			task, err := deps.Store.AddMinimalTask(cl.ID, args[1], d, total)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("informe o nome da tarefa")
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine(fmt.Sprintf("Tarefa %q (%d questões) criada para %s", task.Name, task.TotalQuestions, cl.Name)))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func newTaskRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <class> <task>",
		Aliases: []string{"remove"},
		Short:   "Remove a minimal task and its progress marks",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := deps.Store.Snapshot()
			cl, err := resolveClass(snap, args[0])
			if err != nil {
				return err
			}
			task, err := resolveTask(snap, cl.ID, args[1])
			if err != nil {
				return err
			}
			ok, err := confirmRemoval(fmt.Sprintf("Remover a tarefa %q de %s?", task.Name, cl.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("cancelado"))
				return nil
			}
			if err := deps.Store.RemoveMinimalTask(task.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine(fmt.Sprintf("Tarefa %q removida", task.Name)))
			return nil
		},
	}
	return cmd
}

func newTaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List minimal tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()
			rows := make([][]string, 0)
			for _, task := range stats.MinimalTasks(snap, q) {
				className := ""
				if cl := snap.ClassByID(task.ClassID); cl != nil {
					className = cl.Name
				}
				rows = append(rows, []string{task.Name, className, displayDate(task.Date), strconv.Itoa(task.TotalQuestions), task.ID})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhuma tarefa registrada."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tarefa", "Turma", "Data", "Questões", "ID"}, rows))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func newTaskSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <student> <task> <questions-done>",
		Short: "Record how many questions a student completed",
		Long: `Records a student's progress on a minimal task. The count is clamped
to the range from zero to the task's question total.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("número de questões inválido %q", args[2])
			}
			snap := deps.Store.Snapshot()
			st, err := resolveStudent(snap, args[0])
			if err != nil {
				return err
			}
			cl := snap.ClassByName(st.ClassName)
			if cl == nil {
				return fmt.Errorf("turma %q não encontrada", st.ClassName)
			}
			task, err := resolveTask(snap, cl.ID, args[1])
			if err != nil {
				return err
			}

			if err := deps.Store.SetMinimalTaskRecord(st.ID, task.ID, done); err != nil {
				return err
			}

			after := deps.Store.Snapshot()
			rec := after.TaskProgress(st.ID, task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s — %s: %d/%d\n", st.Name, task.Name, rec.QuestionsDone, task.TotalQuestions)
			return nil
		},
	}
	return cmd
}
