package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/tui/components/bottombar"
)

func newFooterCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "footer",
		Short: "Preview the status footer (s status, e error, h help, q quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFooter(*opts)
		},
	}
	return cmd
}

func runFooter(opts options) error {
	model := &footerTestModel{
		testbedModel: newTestbedModel(opts),
		footer:       bottombar.New("drag with the mouse · a add · q quit"),
	}
	model.footer.SetStatus("ready")
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type footerTestModel struct {
	testbedModel
	footer *bottombar.Model
	n      int
}

func (m *footerTestModel) Init() tea.Cmd { return nil }

func (m *footerTestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := m.contentSize()
		m.footer.SetSize(width, height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "s":
			m.n++
			m.footer.SetStatus(fmt.Sprintf("status update %d", m.n))
		case "e":
			m.footer.SetError("store unavailable, retrying")
		case "h":
			m.footer.SetHelp("enter place · / filter · esc close")
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *footerTestModel) View() (string, *tea.Cursor) {
	return m.composeView(m.footer.View(), nil)
}
