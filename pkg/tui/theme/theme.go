package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Canvas CanvasTheme
	Picker PickerTheme
	Footer FooterTheme
	Modal  ModalTheme
	Log    LogTheme
}

// CanvasTheme styles the bubble canvas and its overlays.
type CanvasTheme struct {
	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	Hint         lipgloss.Style
	Bubble       lipgloss.Style
	Dragging     lipgloss.Style
	Blocked      lipgloss.Style
}

// PickerTheme styles the contact picker overlay.
type PickerTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Note   lipgloss.Style
	Placed lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered modal overlays.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// LogTheme styles the event log pane.
type LogTheme struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
	Repeat    lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Canvas: CanvasTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")),
			FrameFocused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")),
			Title:    lipgloss.NewStyle().Bold(true),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
			Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Bubble:   lipgloss.NewStyle(),
			Dragging: lipgloss.NewStyle().Bold(true),
			Blocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
		Picker: PickerTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Note:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Placed: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Log: LogTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")),
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Repeat:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}
}

var (
	rampLow, _  = colorful.Hex("#5a56e0")
	rampHigh, _ = colorful.Hex("#ee6ff8")
)

// DurationRamp maps a call-time intensity in [0, 1] onto the bubble color
// ramp. Values outside the range clamp.
func DurationRamp(t float64) color.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return lipgloss.Color(rampLow.BlendLuv(rampHigh, t).Clamped().Hex())
}
