package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/calls"
	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/timeutil"
)

// Records renders aggregated call totals, one row per line, longest first.
func (pp *PrettyPrint) Records(records ...calls.Record) {
	if len(records) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Number"), bold.Sprint("Calls"), bold.Sprint("Total"))
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = "-"
		}
		tbl.AddRow(name, r.DisplayPhoneNumber, fmt.Sprintf("%d", r.CallCount), timeutil.FormatSeconds(r.TotalDurationSeconds))
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Summary renders the aggregated report with its window header.
func (pp *PrettyPrint) Summary(sum app.Summary) {
	pp.Title(fmt.Sprintf("Calls in the last %s", sum.Window))
	pp.Records(sum.Records...)

	f := color.New(color.Faint)
	_, _ = f.Printf("%d calls, %s total\n\n", sum.TotalCalls, timeutil.FormatSeconds(sum.TotalDurationSeconds))
}

// Contacts renders the contact book.
func (pp *PrettyPrint) Contacts(contacts ...contact.Contact) {
	if len(contacts) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Numbers"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Numbers"))
	}
	for _, c := range contacts {
		if pp.ShowID {
			tbl.AddRow(c.ID, c.Name, strings.Join(c.PhoneNumbers, ", "))
		} else {
			tbl.AddRow(c.Name, strings.Join(c.PhoneNumbers, ", "))
		}
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Stale renders the bubbles a refresh would change.
func (pp *PrettyPrint) Stale(stale ...app.StaleBubble) {
	if len(stale) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Size"), bold.Sprint("Want"), bold.Sprint("Reason"))
	for _, sb := range stale {
		want := "-"
		if sb.WantSize > 0 {
			want = fmt.Sprintf("%.0f", sb.WantSize)
		}
		tbl.AddRow(sb.Node.ContactName, fmt.Sprintf("%.0f", sb.Node.Size), want, sb.Reason)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}
