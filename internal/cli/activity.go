package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"classctl/internal/stats"
	"classctl/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage dated activities and completion marks",
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(
		newActivityAddCmd(),
		newActivityRemoveCmd(),
		newActivityListCmd(),
		newActivityToggleCmd(),
		newActivityBonusCmd(),
	)
}

func newActivityAddCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "add <class> <name>",
		Short: "Create an activity for a class",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			cl, err := resolveClass(deps.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			a, err := deps.Store.AddAssignment(cl.ID, args[1], d)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("informe o nome da atividade")
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine(fmt.Sprintf("Atividade %q criada para %s em %s", a.Name, cl.Name, displayDate(a.Date))))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func newActivityRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <class> <activity>",
		Aliases: []string{"remove"},
		Short:   "Remove an activity and its completion marks",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := deps.Store.Snapshot()
			cl, err := resolveClass(snap, args[0])
			if err != nil {
				return err
			}
			a, err := resolveAssignment(snap, cl.ID, args[1])
			if err != nil {
				return err
			}
			ok, err := confirmRemoval(fmt.Sprintf("Remover a atividade %q de %s?", a.Name, displayDate(a.Date)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("cancelado"))
				return nil
			}
			if err := deps.Store.RemoveAssignment(a.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine(fmt.Sprintf("Atividade %q removida", a.Name)))
			return nil
		},
	}
	return cmd
}

func newActivityListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := currentQuery()
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()
			rows := make([][]string, 0)
			for _, a := range stats.Assignments(snap, q) {
				className := ""
				if cl := snap.ClassByID(a.ClassID); cl != nil {
					className = cl.Name
				}
				rows = append(rows, []string{a.Name, className, displayDate(a.Date), a.ID})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Nenhuma atividade registrada."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Atividade", "Turma", "Data", "ID"}, rows))
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func newActivityToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <student> <activity>",
		Short: "Flip a student's completion mark for an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := deps.Store.Snapshot()
			st, err := resolveStudent(snap, args[0])
			if err != nil {
				return err
			}
			cl := snap.ClassByName(st.ClassName)
			if cl == nil {
				return fmt.Errorf("turma %q não encontrada", st.ClassName)
			}
			a, err := resolveAssignment(snap, cl.ID, args[1])
			if err != nil {
				return err
			}

			if err := deps.Store.ToggleAssignmentRecord(st.ID, a.ID); err != nil {
				return err
			}

			after := deps.Store.Snapshot()
			rec := after.AssignmentStatus(st.ID, a.ID)
			state := warnStyle.Render("pendente")
			if rec.Done {
				state = successStyle.Render("feito")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s — %s: %s\n", st.Name, a.Name, state)
			return nil
		},
	}
	return cmd
}

func newActivityBonusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonus <student> <activity>",
		Short: "Cycle a student's bonus tag for an activity",
		Long: `Cycles the bonus tag none → yellow → green → none without touching
the completion mark. A cycle on a student with no record for the
activity creates one with the mark unset and the tag at yellow.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := deps.Store.Snapshot()
			st, err := resolveStudent(snap, args[0])
			if err != nil {
				return err
			}
			cl := snap.ClassByName(st.ClassName)
			if cl == nil {
				return fmt.Errorf("turma %q não encontrada", st.ClassName)
			}
			a, err := resolveAssignment(snap, cl.ID, args[1])
			if err != nil {
				return err
			}

			if err := deps.Store.CycleAssignmentBonus(st.ID, a.ID); err != nil {
				return err
			}

			after := deps.Store.Snapshot()
			rec := after.AssignmentStatus(st.ID, a.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s — %s: %s\n", st.Name, a.Name, bonusLabel(rec.BonusTag))
			return nil
		},
	}
	return cmd
}

func bonusLabel(tag store.BonusTag) string {
	switch tag {
	case store.BonusYellow:
		return warnStyle.Render("extra amarelo")
	case store.BonusGreen:
		return successStyle.Render("extra verde")
	default:
		return mutedStyle.Render("sem extra")
	}
}
