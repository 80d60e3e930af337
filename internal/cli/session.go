package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record per-date participation and extra points",
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(
		newSessionParticipationCmd(),
		newSessionExtraCmd(),
	)
}

func newSessionParticipationCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "participation <student>",
		Short: "Flip a student's participation flag for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionToggle(cmd, args[0], date, "participação", deps.Store.ToggleParticipation, func(p, e bool) bool { return p })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func newSessionExtraCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "extra <student>",
		Short: "Flip a student's extra point flag for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionToggle(cmd, args[0], date, "ponto extra", deps.Store.ToggleExtraPoint, func(p, e bool) bool { return e })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

// runSessionToggle is the shared body of the two session flag commands.
// The flags live on the same record but flip independently.
func runSessionToggle(cmd *cobra.Command, studentArg, date, label string, toggle func(string, string) error, pick func(participated, extra bool) bool) error {
	d, err := dateOrToday(date)
	if err != nil {
		return err
	}
	st, err := resolveStudent(deps.Store.Snapshot(), studentArg)
	if err != nil {
		return err
	}

	if err := toggle(st.ID, d); err != nil {
		return err
	}

	snap := deps.Store.Snapshot()
	rec := snap.Session(st.ID, d)
	state := mutedStyle.Render("desmarcado")
	if pick(rec.Participated, rec.ExtraPoint) {
		state = successStyle.Render("marcado")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s — %s em %s: %s\n", st.Name, label, displayDate(d), state)
	return nil
}
