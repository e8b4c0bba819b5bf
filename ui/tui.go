package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the form on the terminal and blocks until the user quits.
func Run(opts Options) error {
	program := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}
