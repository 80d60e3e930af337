// Package cli provides the Cobra command tree and dependency wiring for
// the classctl CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the release version stamped into the binary.
const Version = "0.4.0"

var (
	flagVerbose bool
	flagYes     bool

	// Shared query flags for summary/history/export commands.
	flagClass string
	flagFrom  string
	flagTo    string
)

var rootCmd = &cobra.Command{
	Use:   "classctl",
	Short: "classctl: classroom attendance and activity records",
	Long: `classctl keeps a teacher's classroom records on the local machine:
classes, students, per-date attendance, assignment completion with bonus
tags, participation marks and minimal-task question counts.

All state lives in one local JSON snapshot; summaries, rankings and time
series are recomputed from it on demand, and tables can be exported to
Excel workbooks.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initDependencies(flagVerbose)
	},
}

// Execute runs the root command. Errors are printed once, here.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("erro:"), err)
		return err
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("classctl %s\n", Version))
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log internal operations to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagYes, "yes", false, "skip confirmation prompts")
}

// addQueryFlags registers the class/date-range filter flags shared by the
// reporting commands.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagClass, "class", "all", "class name filter, or \"all\"")
	cmd.Flags().StringVar(&flagFrom, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&flagTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
}
