package refresh

import (
	"context"
	"errors"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/printers"
)

// Refresh re-sizes every placed bubble from current call data and prints the
// result. Bubble positions are left alone.
type Refresh struct {
	Service *app.Service
	ShowID  bool
}

func (n *Refresh) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not refresh, no service")
	}

	snap, notes, err := n.Service.RefreshBubbles(ctx)
	if err != nil {
		return err
	}

	pp := printers.NewPretty()
	pp.ShowID = n.ShowID
	pp.NewLine()
	pp.TitleWithCount("Bubbles", len(snap.Bubbles))
	pp.Bubbles(snap.Bubbles...)
	pp.Notes(notes)
	return nil
}
