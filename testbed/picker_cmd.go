package main

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/tui/components/picker"
	"tableflip.dev/ringo/pkg/tui/events"
)

func newPickerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picker",
		Short: "Preview the contact picker list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(*opts)
		},
	}
	return cmd
}

func runPicker(opts options) error {
	refs, err := loadContactsData(opts.real)
	if err != nil {
		return err
	}
	pk := picker.New(events.ComponentID("TestPicker"))
	pk.SetContacts(refs)
	model := &pickerTestModel{
		testbedModel: newTestbedModel(opts),
		picker:       pk,
		refs:         refs,
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type pickerTestModel struct {
	testbedModel
	picker *picker.Model
	refs   []events.ContactRef
}

func (m *pickerTestModel) Init() tea.Cmd { return nil }

func (m *pickerTestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := m.contentSize()
		m.picker.SetSize(width, height)
	case events.AddBubbleRequestMsg:
		// Simulate the placement so the (placed) marker updates live.
		for i := range m.refs {
			if m.refs[i].ID == msg.Contact.ID {
				m.refs[i].Placed = true
			}
		}
		m.picker.SetContacts(m.refs)
	}

	if _, cmd := m.picker.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *pickerTestModel) View() (string, *tea.Cursor) {
	return m.composeView(m.picker.View(), nil)
}
