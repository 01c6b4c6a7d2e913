package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is the contract shared by embeddable Bubble Tea widgets. Update
// returns the component to keep so implementations can swap themselves out.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}
