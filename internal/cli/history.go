package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"classctl/internal/stats"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Time series over the recorded attendance dates",
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(
		newHistoryClassCmd(),
		newHistoryStudentCmd(),
	)
}

func newHistoryClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class <class>",
		Short: "Per-date attendance and activity series for a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()
			cl, err := resolveClass(snap, args[0])
			if err != nil {
				return err
			}

			points := stats.ClassHistory(snap, q, cl.ID)
			if len(points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhuma data de chamada registrada."))
				return nil
			}

			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					displayDate(p.Date),
					pctCell(p.Attendance, true),
					optPctCell(p.Activities),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), card(
				fmt.Sprintf("Histórico — %s", cl.Name),
				renderTable([]string{"Data", "Presença", "Atividades"}, rows)))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func newHistoryStudentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student <student>",
		Short: "Cumulative attendance series for a student",
		Long: `Shows the student's evolution over the recorded attendance dates:
the running attendance percentage, the mark on each single day and
the share of that day's activities completed. A dash means the day
carries no record for that column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()
			st, err := resolveStudent(snap, args[0])
			if err != nil {
				return err
			}

			points := stats.StudentHistory(snap, q, st.ID)
			if len(points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhuma data de chamada registrada."))
				return nil
			}

			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					displayDate(p.Date),
					pctCell(p.Cumulative, true),
					optPctCell(p.Present),
					optPctCell(p.DayActivities),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), card(
				fmt.Sprintf("Histórico — %s (%s)", st.Name, st.ClassName),
				renderTable([]string{"Data", "Acumulado", "Dia", "Atividades"}, rows)))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

// optPctCell renders a nullable series value, dash for a gap.
func optPctCell(v *int) string {
	if v == nil {
		return "—"
	}
	return pctCell(*v, true)
}
