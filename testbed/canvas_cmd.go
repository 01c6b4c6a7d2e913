package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/tui/components/canvas"
	"tableflip.dev/ringo/pkg/tui/events"
)

func newCanvasCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Preview the bubble canvas with drag, nudge, and delete",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanvas(*opts)
		},
	}
	return cmd
}

func runCanvas(opts options) error {
	ls, err := loadLayoutData(opts.real)
	if err != nil {
		return err
	}
	cv := canvas.New(events.ComponentID("TestCanvas"), ls)
	cv.SetFocused(true)
	model := &canvasTestModel{
		testbedModel: newTestbedModel(opts),
		canvas:       cv,
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

type canvasTestModel struct {
	testbedModel
	canvas *canvas.Model
}

func (m *canvasTestModel) Init() tea.Cmd { return nil }

func (m *canvasTestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := m.contentSize()
		m.canvas.SetSize(width, height-1)
		ox, oy := m.contentOrigin()
		m.canvas.SetOrigin(ox, oy)
	case tea.KeyMsg:
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}

	if _, cmd := m.canvas.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *canvasTestModel) View() (string, *tea.Cursor) {
	content := fmt.Sprintf("%s\n%s", m.canvas.View(), m.metadataBar())
	return m.composeView(content, nil)
}

func (m *canvasTestModel) metadataBar() string {
	parts := []string{fmt.Sprintf("Phase: %s", m.canvas.Phase())}
	if n, ok := m.canvas.Selected(); ok {
		parts = append(parts, fmt.Sprintf("Selected: %s", n.ContactName))
	} else {
		parts = append(parts, "Selected: (none)")
	}
	if ls := m.canvas.Store(); ls != nil {
		parts = append(parts, fmt.Sprintf("Bubbles: %d", ls.Len()))
	}
	return strings.Join(parts, " | ")
}
