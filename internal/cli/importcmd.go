package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"classctl/internal/roster"
)

const importManual = `# Importação de alunos via CSV

A primeira linha deve ser um cabeçalho contendo as colunas **nome** e
**turma**, em qualquer ordem e em qualquer caixa. Colunas extras são
ignoradas.

` + "```csv" + `
nome,turma
Ana Souza,3A
Bruno Lima,3A
Carla Dias,2B
` + "```" + `

Regras aplicadas a cada linha:

- Turmas são casadas pelo nome, sem distinguir maiúsculas: ` + "`3a`" + ` e
  ` + "`3A`" + ` caem na mesma turma.
- Turmas inexistentes são criadas automaticamente na primeira linha que
  as cita.
- Linhas com nome ou turma em branco são listadas na prévia e puladas.
- Linhas totalmente vazias são ignoradas.

Use ` + "`--dry-run`" + ` para ver a prévia sem gravar nada.
`

func newImportCmd() *cobra.Command {
	var dryRun, showManual bool
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import students from a CSV file",
		Long: `Imports students in batch from a CSV file with "nome" and "turma"
columns. Missing classes are created on the fly; class names are
matched without regard to case. Run with --manual for the format
guide.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showManual {
				return renderManual(out)
			}
			if len(args) == 0 {
				return fmt.Errorf("informe o arquivo CSV (ou use --manual)")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("ler %s: %w", args[0], err)
			}
			rows, err := roster.Parse(string(data))
			if err != nil {
				return err
			}

			invalid := 0
			for _, row := range rows {
				if !row.Valid() {
					invalid++
					fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("ignorada: %q / %q (%s)", row.Name, row.Class, row.Err)))
				}
			}

			if dryRun {
				fmt.Fprintf(out, "%d linhas válidas, %d inválidas; nada foi gravado.\n", len(rows)-invalid, invalid)
				return nil
			}

			added, err := roster.Import(deps.Store, rows)
			if err != nil {
				return fmt.Errorf("importação interrompida após %d alunos: %w", added, err)
			}
			fmt.Fprintln(out, successLine(fmt.Sprintf("%d alunos importados (%d linhas inválidas ignoradas)", added, invalid)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and preview without writing")
	cmd.Flags().BoolVar(&showManual, "manual", false, "show the CSV format guide")
	return cmd
}

// renderManual prints the CSV guide, styled when stdout is a terminal.
func renderManual(out io.Writer) error {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
		if err == nil {
			if styled, err := r.Render(importManual); err == nil {
				_, werr := out.Write([]byte(styled))
				return werr
			}
		}
	}
	_, err := out.Write([]byte(importManual))
	return err
}

func init() {
	rootCmd.AddCommand(newImportCmd())
}
