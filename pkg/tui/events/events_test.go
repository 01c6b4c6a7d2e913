package events

import (
	"strings"
	"testing"

	"tableflip.dev/ringo/pkg/layout"
)

func TestRefLabelsFallBackToID(t *testing.T) {
	c := ContactRef{ID: "c1", Name: "Ada Lovelace"}
	if got := c.Label(); got != "Ada Lovelace" {
		t.Fatalf("expected name label, got %q", got)
	}
	c.Name = ""
	if got := c.Label(); got != "c1" {
		t.Fatalf("expected id label, got %q", got)
	}

	b := BubbleRef{ID: "bubble-c1-1"}
	if got := b.Label(); got != "bubble-c1-1" {
		t.Fatalf("expected id label, got %q", got)
	}
}

func TestDescribeFormats(t *testing.T) {
	tests := []struct {
		name string
		msg  interface{ Describe() string }
		want []string
	}{
		{
			name: "contact highlight free",
			msg:  ContactHighlightMsg{Contact: ContactRef{Name: "Ada Lovelace"}},
			want: []string{`contact:"Ada Lovelace"`, `state:"free"`},
		},
		{
			name: "contact highlight placed",
			msg:  ContactHighlightMsg{Contact: ContactRef{Name: "Grace Hopper", Placed: true}},
			want: []string{`state:"placed"`},
		},
		{
			name: "add request",
			msg:  AddBubbleRequestMsg{Component: "picker", Contact: ContactRef{ID: "c1"}},
			want: []string{`component:"picker"`, `contact:"c1"`},
		},
		{
			name: "press",
			msg: BubblePressMsg{
				Bubble: BubbleRef{ID: "bubble-c1-1", Name: "Ada Lovelace"},
				At:     layout.Position{X: 97.5, Y: 95},
			},
			want: []string{`bubble:"Ada Lovelace"`, "at:(98, 95)"},
		},
		{
			name: "move outcome",
			msg: BubbleMoveMsg{
				Bubble:  BubbleRef{Name: "Ada Lovelace"},
				From:    layout.Position{X: 100, Y: 100},
				To:      layout.Position{X: 150, Y: 100},
				Blocked: 2,
			},
			want: []string{"from:(100, 100)", "to:(150, 100)", "blocked:2"},
		},
		{
			name: "change",
			msg: BubbleChangeMsg{
				Action: ChangeDelete,
				Bubble: BubbleRef{Name: "Ada Lovelace", Size: 80},
			},
			want: []string{`action:"delete"`, "size:80"},
		},
		{
			name: "layout sync",
			msg:  LayoutSyncMsg{Component: "root", Bubbles: 3},
			want: []string{`component:"root"`, "bubbles:3"},
		},
		{
			name: "focus",
			msg:  FocusMsg{Component: "canvas"},
			want: []string{`component:"canvas"`, `state:"focus"`},
		},
	}

	for _, tc := range tests {
		got := tc.msg.Describe()
		for _, want := range tc.want {
			if !strings.Contains(got, want) {
				t.Fatalf("%s: expected %q in %q", tc.name, want, got)
			}
		}
	}
}

func TestCmdWrappersCarryFields(t *testing.T) {
	cmd := BubbleMoveCmd("canvas", BubbleRef{ID: "bubble-c1-1"},
		layout.Position{X: 100, Y: 100}, layout.Position{X: 150, Y: 100}, 1)
	msg, ok := cmd().(BubbleMoveMsg)
	if !ok {
		t.Fatalf("expected BubbleMoveMsg, got %T", cmd())
	}
	if msg.Component != "canvas" || msg.Bubble.ID != "bubble-c1-1" {
		t.Fatalf("unexpected identity: %+v", msg)
	}
	if msg.To != (layout.Position{X: 150, Y: 100}) || msg.Blocked != 1 {
		t.Fatalf("unexpected payload: %+v", msg)
	}

	add := AddBubbleRequestCmd("picker", ContactRef{ID: "c2", Name: "Grace Hopper"})
	req, ok := add().(AddBubbleRequestMsg)
	if !ok {
		t.Fatalf("expected AddBubbleRequestMsg, got %T", add())
	}
	if req.Contact.Name != "Grace Hopper" {
		t.Fatalf("unexpected contact: %+v", req.Contact)
	}
}
