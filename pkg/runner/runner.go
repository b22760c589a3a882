package runner

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes a form to completion. It returns the saved response ID,
// or 0 when the user quit without submitting.
func Run(opts Options) (int64, error) {
	m, err := NewModel(opts)
	if err != nil {
		return 0, err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("run form %s: %w", opts.Definition.ID, err)
	}

	fm, ok := final.(Model)
	if !ok {
		return 0, fmt.Errorf("run form %s: unexpected final model", opts.Definition.ID)
	}
	return fm.ResponseID, nil
}
