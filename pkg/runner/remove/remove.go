package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/printers"
)

// Remove drops the bubbles for the given contact references. References with
// no bubble are reported, not failed, so the verb can be retried safely.
type Remove struct {
	Service *app.Service
	Refs    []string
	ShowID  bool
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if len(n.Refs) == 0 {
		return errors.New("requires a contact name, id, or number")
	}

	faint := color.New(color.Faint, color.Italic)
	for _, ref := range n.Refs {
		removed, err := n.Service.RemoveBubble(ctx, ref)
		if err != nil {
			return err
		}
		if !removed {
			_, _ = faint.Printf("no bubble for %q\n", ref)
		}
	}

	snap, err := n.Service.Bubbles()
	if err != nil {
		return err
	}

	pp := printers.NewPretty()
	pp.ShowID = n.ShowID
	fmt.Println("")
	pp.TitleWithCount("Bubbles", len(snap.Bubbles))
	pp.Bubbles(snap.Bubbles...)
	return nil
}
