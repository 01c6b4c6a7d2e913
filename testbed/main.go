package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/tui/components/eventviewer"
	"tableflip.dev/ringo/pkg/tui/events"
)

const (
	minFrameHeight = 12
	minLogHeight   = 5
	maxLogHeight   = 12
	frameGap       = 1
)

type options struct {
	full   bool
	width  int
	height int
	real   bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the TUI testbed harness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 84, "window width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 24, "window height when not fullscreen")
	rootCmd.PersistentFlags().BoolVar(&opts.real, "real", false, "load data from the real layout store")

	rootCmd.AddCommand(newCanvasCmd(&opts))
	rootCmd.AddCommand(newPickerCmd(&opts))
	rootCmd.AddCommand(newFooterCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	base := newTestbedModel(opts)
	p := tea.NewProgram(&base, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// testbedModel is the shared chrome around a component under test: a
// centered bordered frame holding the component, with an event log pinned
// to the bottom rows.
type testbedModel struct {
	fullscreen bool
	reqWidth   int
	reqHeight  int

	termWidth  int
	termHeight int

	focused    bool
	focusOwner events.ComponentID

	log *eventviewer.Model

	innerWidth  int
	innerHeight int
	logHeight   int
	layoutDirty bool
}

func newTestbedModel(opts options) testbedModel {
	return testbedModel{
		fullscreen:  opts.full,
		reqWidth:    opts.width,
		reqHeight:   opts.height,
		log:         eventviewer.New(400),
		layoutDirty: true,
	}
}

func (m *testbedModel) Init() tea.Cmd { return nil }

func (m *testbedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logEvent(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.layoutDirty = true
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case events.FocusMsg:
		m.focused = true
		m.focusOwner = msg.Component
	case events.BlurMsg:
		if m.focusOwner == msg.Component || m.focusOwner == "" {
			m.focused = false
			m.focusOwner = ""
		}
	}

	return m, nil
}

func (m *testbedModel) SetFocus(f bool) {
	m.focused = f
	if !f {
		m.focusOwner = ""
	}
}

func (m *testbedModel) View() (string, *tea.Cursor) {
	content := lipgloss.NewStyle().
		Padding(1, 2).
		Render(
			"Testbed UI\n\n" +
				"Run a subcommand to preview a component:\n" +
				"  testbed canvas   bubble canvas with sample layout\n" +
				"  testbed picker   contact picker list\n" +
				"  testbed footer   status footer\n\n" +
				"Press ctrl+c to quit.",
		)
	return m.composeView(content, nil)
}

// composeView stacks the framed component over the event log and remaps the
// component's cursor to screen coordinates.
func (m *testbedModel) composeView(content string, cursor *tea.Cursor) (string, *tea.Cursor) {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…", nil
	}
	m.ensureLayout()

	stage := lipgloss.Place(
		m.termWidth,
		max(1, m.termHeight-m.logHeight),
		lipgloss.Center,
		lipgloss.Top,
		m.renderFrame(content),
	)
	if pane := m.renderLog(); pane != "" {
		stage = lipgloss.JoinVertical(lipgloss.Left, stage, pane)
	}
	if cursor != nil {
		ox, oy := m.contentOrigin()
		cursor = offsetCursor(cursor, ox, oy)
	}
	return stage, cursor
}

// renderFrame draws the border around the component under test. The border
// color doubles as the focus indicator.
func (m *testbedModel) renderFrame(content string) string {
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if m.focused {
		border = border.BorderForeground(lipgloss.Color("#39FF14"))
	} else {
		border = border.BorderForeground(lipgloss.Color("240"))
	}
	body := lipgloss.NewStyle().
		Width(m.innerWidth).
		Height(m.innerHeight).
		Align(lipgloss.Left, lipgloss.Top).
		Render(content)
	return border.Render(body)
}

func (m *testbedModel) renderLog() string {
	if m.log == nil || m.logHeight == 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(m.termWidth).
		Height(m.logHeight).
		Align(lipgloss.Left, lipgloss.Bottom).
		Render(m.log.View())
}

// contentSize is the space available to the component under test.
func (m *testbedModel) contentSize() (int, int) {
	m.ensureLayout()
	return m.innerWidth, m.innerHeight
}

// contentOrigin is the screen position of the frame's top-left content cell,
// which mouse-driven components need for cell mapping.
func (m *testbedModel) contentOrigin() (int, int) {
	m.ensureLayout()
	offsetX := 0
	if rendered := m.innerWidth + 2; rendered < m.termWidth {
		offsetX = (m.termWidth - rendered) / 2
	}
	return offsetX + 1, 1
}

// ensureLayout recomputes the frame and log split after a resize. The frame
// keeps at least minFrameHeight rows; the log takes at most a quarter of the
// terminal and disappears entirely when the window is too cramped.
func (m *testbedModel) ensureLayout() {
	if m.termWidth == 0 || m.termHeight == 0 || !m.layoutDirty {
		return
	}

	m.logHeight = 0
	if m.log != nil {
		if avail := m.termHeight - minFrameHeight - frameGap; avail >= minLogHeight {
			m.logHeight = clamp(m.termHeight/4, minLogHeight, min(maxLogHeight, avail))
		}
	}

	frameSpace := max(minFrameHeight, m.termHeight-m.logHeight-frameGap)
	width := clamp(m.reqWidth, 20, m.termWidth-4)
	height := clamp(m.reqHeight, minFrameHeight, frameSpace)
	if m.fullscreen {
		width = clamp(m.termWidth-2, 20, m.termWidth)
		height = frameSpace
	}

	m.innerWidth = max(1, width-2)
	m.innerHeight = max(1, height-2)
	m.layoutDirty = false

	if m.log != nil && m.logHeight > 0 {
		m.log.SetSize(m.termWidth, m.logHeight)
	}
}

// logEvent mirrors every message into the event pane. Pointer motion is
// skipped to keep drag streams from flooding it.
func (m *testbedModel) logEvent(msg tea.Msg) {
	if m.log == nil {
		return
	}
	if _, motion := msg.(tea.MouseMotionMsg); motion {
		return
	}
	source := "tea"
	if s, ok := eventSource(msg); ok {
		source = s
	}
	m.log.Append(eventviewer.Entry{
		Timestamp: time.Now(),
		Source:    source,
		Summary:   fmt.Sprintf("%T", msg),
		Detail:    describeMsg(msg),
		Level:     eventviewer.LevelInfo,
	})
}

func describeMsg(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	case tea.MouseClickMsg:
		return fmt.Sprintf("click=%s", v.String())
	case tea.MouseReleaseMsg:
		return fmt.Sprintf("release=%s", v.String())
	default:
		return ""
	}
}

func eventSource(msg tea.Msg) (string, bool) {
	switch v := msg.(type) {
	case events.ContactHighlightMsg:
		return string(v.Component), true
	case events.AddBubbleRequestMsg:
		return string(v.Component), true
	case events.RemoveBubbleRequestMsg:
		return string(v.Component), true
	case events.BubbleHighlightMsg:
		return string(v.Component), true
	case events.BubblePressMsg:
		return string(v.Component), true
	case events.BubbleMoveMsg:
		return string(v.Component), true
	case events.BubbleChangeMsg:
		return string(v.Component), true
	case events.LayoutSyncMsg:
		return string(v.Component), true
	case events.FocusMsg:
		return string(v.Component), true
	case events.BlurMsg:
		return string(v.Component), true
	case events.DebugMsg:
		return string(v.Component), true
	default:
		return "", false
	}
}

func clamp(value, low, high int) int {
	if high <= 0 {
		return low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func offsetCursor(cursor *tea.Cursor, dx, dy int) *tea.Cursor {
	if cursor == nil {
		return nil
	}
	clone := *cursor
	clone.Position.X += dx
	clone.Position.Y += dy
	return &clone
}
