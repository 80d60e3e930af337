package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// confirmRemoval asks before a cascading delete. Non-interactive runs
// (piped stdin, scripts) and --yes skip the prompt.
func confirmRemoval(prompt string) (bool, error) {
	if flagYes || !isatty.IsTerminal(os.Stdin.Fd()) {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Remover").
			Negative("Cancelar").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
