package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"classctl/internal/store"
)

func newAttendanceMarkCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "mark <class>",
		Short: "Interactive roll call for a class",
		Long: `Opens an interactive roll call for one class on one date. Moving
through the roster and toggling marks writes each change to the data
file immediately, so quitting at any point loses nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("a chamada interativa exige um terminal; use 'attendance toggle'")
			}
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			cl, err := resolveClass(deps.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			snap := deps.Store.Snapshot()
			students := sortStudents(snap.StudentsInClass(cl.Name))
			if len(students) == 0 {
				return fmt.Errorf("a turma %q não tem alunos", cl.Name)
			}

			m := newMarkModel(cl.Name, d, students)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("chamada interativa: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine(fmt.Sprintf("Chamada de %s em %s registrada", cl.Name, displayDate(d))))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

// markKeyMap holds the key bindings of the roll call screen.
type markKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Presence      key.Binding
	Participation key.Binding
	Extra         key.Binding
	Quit          key.Binding
}

func (k markKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Presence, k.Participation, k.Extra, k.Quit}
}

func (k markKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var markKeys = markKeyMap{
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "descer")),
	Presence:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("espaço", "presença")),
	Participation: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "participação")),
	Extra:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "ponto extra")),
	Quit:          key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "sair")),
}

// markModel is the bubbletea Model for the interactive roll call.
type markModel struct {
	className string
	date      string
	students  []store.Student
	cursor    int
	help      help.Model
	err       error
}

func newMarkModel(className, date string, students []store.Student) markModel {
	return markModel{
		className: className,
		date:      date,
		students:  students,
		help:      help.New(),
	}
}

func (m markModel) Init() tea.Cmd {
	return nil
}

func (m markModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, markKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, markKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, markKeys.Down):
			if m.cursor < len(m.students)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, markKeys.Presence):
			m.err = deps.Store.ToggleAttendance(m.students[m.cursor].ID, m.date)
			return m, nil
		case key.Matches(msg, markKeys.Participation):
			m.err = deps.Store.ToggleParticipation(m.students[m.cursor].ID, m.date)
			return m, nil
		case key.Matches(msg, markKeys.Extra):
			m.err = deps.Store.ToggleExtraPoint(m.students[m.cursor].ID, m.date)
			return m, nil
		}
	}
	return m, nil
}

func (m markModel) View() string {
	snap := deps.Store.Snapshot()

	s := primaryStyle.Render(fmt.Sprintf("Chamada — %s — %s", m.className, displayDate(m.date))) + "\n\n"
	for i, st := range m.students {
		cursor := "  "
		if i == m.cursor {
			cursor = primaryStyle.Render("› ")
		}
		s += cursor + markRow(&snap, st, m.date) + "\n"
	}

	if m.err != nil {
		s += "\n" + errorStyle.Render("erro: "+m.err.Error()) + "\n"
	}
	s += "\n" + m.help.View(markKeys)
	return s
}

// markRow renders one roster line with the presence, participation and
// extra point marks currently recorded for the date.
func markRow(snap *store.Snapshot, st store.Student, date string) string {
	presence := mutedStyle.Render("·")
	if rec := snap.Attendance(st.ID, date); rec != nil {
		if rec.Present {
			presence = successStyle.Render("P")
		} else {
			presence = errorStyle.Render("F")
		}
	}

	flags := ""
	if sess := snap.Session(st.ID, date); sess != nil {
		if sess.Participated {
			flags += " " + primaryStyle.Render("✦")
		}
		if sess.ExtraPoint {
			flags += " " + warnStyle.Render("★")
		}
	}
	return presence + " " + st.Name + flags
}
