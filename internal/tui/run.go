package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codemend/codemend/internal/types"
)

// Review runs the interactive review screen over suggested findings and
// returns the keys (see Key) of fixes the user accepted.
func Review(root string, findings []types.Finding) (map[string]bool, error) {
	m := NewModel(root, findings)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("error running review: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Accepted(), nil
	}
	return map[string]bool{}, nil
}
