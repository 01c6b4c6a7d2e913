package app

import (
	"context"
	"sort"

	"tableflip.dev/ringo/pkg/layout"
)

// StaleBubble flags a placed bubble whose size no longer matches live call
// data, either because the contact vanished from the book or because the log
// moved since the last refresh. WantSize is the diameter a refresh would
// apply; it is zero when the contact cannot be resolved at all.
type StaleBubble struct {
	Node     *layout.BubbleNode `json:"node"`
	Reason   string             `json:"reason"`
	WantSize float64            `json:"wantSize,omitempty"`
}

// StaleBubbles reviews the placed bubbles against current data and returns
// the ones a refresh would change or can no longer resolve. Unresolved
// bubbles sort first since they are the ones worth removing; the rest order
// by how far their size has drifted. The data sources degrade the same way
// they do for sizing, so a denied source marks bubbles unresolved instead of
// failing the review.
func (s *Service) StaleBubbles(ctx context.Context) ([]StaleBubble, []string, error) {
	ls, err := s.LayoutStore()
	if err != nil {
		return nil, nil, err
	}
	idx, _, notes := s.Durations(ctx)

	var out []StaleBubble
	for _, n := range ls.Nodes() {
		seconds, ok := idx.Lookup(n.ContactID)
		if !ok {
			out = append(out, StaleBubble{Node: n, Reason: "contact not in book"})
			continue
		}
		want := layout.Diameter(seconds, ls.Canvas().Width)
		if want != n.Size {
			out = append(out, StaleBubble{Node: n, Reason: "call data changed", WantSize: want})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ui, uj := out[i].WantSize == 0, out[j].WantSize == 0
		if ui != uj {
			return ui
		}
		di, dj := drift(out[i]), drift(out[j])
		if di == dj {
			return out[i].Node.ContactName < out[j].Node.ContactName
		}
		return di > dj
	})
	return out, notes, nil
}

func drift(sb StaleBubble) float64 {
	d := sb.WantSize - sb.Node.Size
	if d < 0 {
		d = -d
	}
	return d
}
