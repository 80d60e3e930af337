package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Record and inspect per-date attendance",
}

func init() {
	rootCmd.AddCommand(attendanceCmd)
	attendanceCmd.AddCommand(
		newAttendanceToggleCmd(),
		newAttendanceMarkCmd(),
	)
}

func newAttendanceToggleCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "toggle <student>",
		Short: "Flip a student's presence mark for a date",
		Long: `Flips the presence mark for one student on one date. The first
toggle marks the student present; each further toggle alternates
present/absent on the same record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			st, err := resolveStudent(deps.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			if err := deps.Store.ToggleAttendance(st.ID, d); err != nil {
				return err
			}

			snap := deps.Store.Snapshot()
			rec := snap.Attendance(st.ID, d)
			state := errorStyle.Render("falta")
			if rec.Present {
				state = successStyle.Render("presente")
			}
			fmt.Fprintf(out, "%s — %s: %s\n", st.Name, displayDate(d), state)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}
