package printers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/timeutil"
)

// PrettyPrint renders layout and call data as console tables.
type PrettyPrint struct {
	ShowID bool
}

// NewPretty builds a printer, disabling color when stdout is not a terminal.
func NewPretty() *PrettyPrint {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		color.NoColor = true
	}
	return &PrettyPrint{}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" bubble")
	default:
		_, _ = c.Println(" bubbles")
	}
}

// Notes prints degradation notes under whatever table came before them.
func (pp *PrettyPrint) Notes(notes []string) {
	if len(notes) == 0 {
		return
	}
	f := color.New(color.Faint, color.Italic)
	for _, note := range notes {
		_, _ = f.Printf("note: %s\n", note)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Print(" none\n\n")
}

// Bubbles renders the placed bubbles in layout order.
func (pp *PrettyPrint) Bubbles(nodes ...*layout.BubbleNode) {
	if len(nodes) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Phone"), bold.Sprint("Size"), bold.Sprint("Position"), bold.Sprint("Call time"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Phone"), bold.Sprint("Size"), bold.Sprint("Position"), bold.Sprint("Call time"))
	}

	for _, n := range nodes {
		pos := fmt.Sprintf("(%.0f, %.0f)", n.Position.X, n.Position.Y)
		size := fmt.Sprintf("%.0f", n.Size)
		dur := timeutil.FormatSeconds(n.CallDurationSeconds)
		if pp.ShowID {
			tbl.AddRow(n.ID, n.ContactName, n.PhoneNumber, size, pos, dur)
		} else {
			tbl.AddRow(n.ContactName, n.PhoneNumber, size, pos, dur)
		}
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}
