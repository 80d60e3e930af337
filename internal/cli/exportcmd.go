package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"classctl/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the recorded data to Excel workbooks",
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(
		newExportAttendanceCmd(),
		newExportActivitiesCmd(),
		newExportTasksCmd(),
		newExportDayCmd(),
	)
}

func newExportAttendanceCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Roll call workbook: one column per recorded date",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			if err := export.AttendanceWorkbook(deps.Store.Snapshot(), q, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine("Planilha de chamada gravada em "+out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "chamada.xlsx", "output file")
	addQueryFlags(cmd)
	return cmd
}

func newExportActivitiesCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Activities workbook: completion and bonus per activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			if err := export.ActivitiesWorkbook(deps.Store.Snapshot(), q, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine("Planilha de atividades gravada em "+out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "atividades.xlsx", "output file")
	addQueryFlags(cmd)
	return cmd
}

func newExportTasksCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Minimal tasks workbook: question counts per task",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			if err := export.TasksWorkbook(deps.Store.Snapshot(), q, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine("Planilha de tarefas gravada em "+out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "tarefas.xlsx", "output file")
	addQueryFlags(cmd)
	return cmd
}

func newExportDayCmd() *cobra.Command {
	var out, date string
	cmd := &cobra.Command{
		Use:   "day <class>",
		Short: "Single class-day workbook: roll call plus that day's activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			cl, err := resolveClass(deps.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if err := export.ClassDayWorkbook(deps.Store.Snapshot(), cl.ID, d, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine("Planilha do dia gravada em "+out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "turma.xlsx", "output file")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}
