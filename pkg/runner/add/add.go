package add

import (
	"context"
	"errors"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/printers"
)

// Add places a bubble for each contact reference and prints the resulting
// layout.
type Add struct {
	Service *app.Service
	Refs    []string
	ShowID  bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if len(n.Refs) == 0 {
		return errors.New("requires a contact name, id, or number")
	}

	var notes []string
	for _, ref := range n.Refs {
		_, ns, err := n.Service.AddBubble(ctx, ref)
		if err != nil {
			return err
		}
		notes = append(notes, ns...)
	}

	snap, err := n.Service.Bubbles()
	if err != nil {
		return err
	}

	pp := printers.NewPretty()
	pp.ShowID = n.ShowID
	pp.NewLine()
	pp.TitleWithCount("Bubbles", len(snap.Bubbles))
	pp.Bubbles(snap.Bubbles...)
	pp.Notes(dedupe(notes))
	return nil
}

func dedupe(notes []string) []string {
	seen := make(map[string]bool, len(notes))
	out := notes[:0]
	for _, note := range notes {
		if seen[note] {
			continue
		}
		seen[note] = true
		out = append(out, note)
	}
	return out
}
