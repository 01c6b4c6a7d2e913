package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/printers"
)

// Kinds of data the get verb can fetch.
const (
	KindBubbles  = "bubbles"
	KindContacts = "contacts"
	KindCalls    = "calls"
	KindStale    = "stale"
)

type Get struct {
	Service *app.Service
	Kind    string
	ShowID  bool
	JSON    bool
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	switch n.Kind {
	case "", KindBubbles:
		return n.bubbles()
	case KindContacts:
		return n.contacts(ctx)
	case KindCalls:
		return n.calls(ctx)
	case KindStale:
		return n.stale(ctx)
	default:
		return fmt.Errorf("unknown kind %q (expected bubbles, contacts, calls, or stale)", n.Kind)
	}
}

func (n *Get) bubbles() error {
	snap, err := n.Service.Bubbles()
	if err != nil {
		return err
	}

	if n.JSON {
		return printJSON(map[string]any{
			"bubbles":            snap.Bubbles,
			"selectedContactIds": snap.SelectedContactIDs,
		})
	}

	pp := printers.NewPretty()
	pp.ShowID = n.ShowID
	pp.NewLine()
	pp.TitleWithCount("Bubbles", len(snap.Bubbles))
	pp.Bubbles(snap.Bubbles...)
	return nil
}

func (n *Get) contacts(ctx context.Context) error {
	book, err := n.Service.Contacts(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		return printJSON(map[string]any{
			"contacts": book,
			"count":    len(book),
		})
	}

	pp := printers.NewPretty()
	pp.ShowID = n.ShowID
	pp.NewLine()
	pp.Title("Contacts")
	pp.Contacts(book...)
	return nil
}

func (n *Get) calls(ctx context.Context) error {
	sum, err := n.Service.Summary(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		return printJSON(map[string]any{
			"window":               sum.Window,
			"since":                sum.Since,
			"records":              sum.Records,
			"totalCalls":           sum.TotalCalls,
			"totalDurationSeconds": sum.TotalDurationSeconds,
		})
	}

	pp := printers.NewPretty()
	pp.NewLine()
	pp.Summary(sum)
	return nil
}

func (n *Get) stale(ctx context.Context) error {
	stale, notes, err := n.Service.StaleBubbles(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		return printJSON(map[string]any{
			"stale": stale,
			"notes": notes,
			"count": len(stale),
		})
	}

	pp := printers.NewPretty()
	pp.NewLine()
	pp.TitleWithCount("Stale", len(stale))
	pp.Stale(stale...)
	pp.Notes(notes)
	return nil
}

func printJSON(payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(data))
	return nil
}
