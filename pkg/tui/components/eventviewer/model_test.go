package eventviewer

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func stripANSI(s string) string {
	var b strings.Builder
	var inEscape bool
	for _, r := range s {
		if inEscape {
			if ansi.IsTerminator(r) {
				inEscape = false
			}
			continue
		}
		if r == ansi.Marker {
			inEscape = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestAppendFoldsRepeats(t *testing.T) {
	m := New(10)
	m.Append(Entry{Source: "canvas", Summary: "BubbleHighlightMsg", Detail: `bubble:"Ada"`})
	m.Append(Entry{Source: "canvas", Summary: "BubbleHighlightMsg", Detail: `bubble:"Ada"`})
	m.Append(Entry{Source: "canvas", Summary: "BubbleHighlightMsg", Detail: `bubble:"Ada"`})

	if m.Len() != 1 {
		t.Fatalf("expected 1 folded row, got %d", m.Len())
	}
	if m.Total() != 3 {
		t.Fatalf("expected total 3, got %d", m.Total())
	}

	m.SetSize(60, 8)
	view := stripANSI(m.View())
	if !strings.Contains(view, "(x3)") {
		t.Fatalf("expected repeat marker in view:\n%s", view)
	}
	if !strings.Contains(view, "Events (3)") {
		t.Fatalf("expected header count in view:\n%s", view)
	}
}

func TestAppendKeepsDistinctRows(t *testing.T) {
	m := New(10)
	m.Append(Entry{Source: "canvas", Summary: "press"})
	m.Append(Entry{Source: "picker", Summary: "press"})
	m.Append(Entry{Source: "canvas", Summary: "press"})

	if m.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", m.Len())
	}
}

func TestAppendTrimsToMaxRows(t *testing.T) {
	m := New(2)
	m.Append(Entry{Summary: "a"})
	m.Append(Entry{Summary: "b"})
	m.Append(Entry{Summary: "c"})

	if m.Len() != 2 {
		t.Fatalf("expected 2 retained rows, got %d", m.Len())
	}
	if m.rows[0].Summary != "c" || m.rows[1].Summary != "b" {
		t.Fatalf("expected newest-first retention, got %q then %q",
			m.rows[0].Summary, m.rows[1].Summary)
	}
}

func TestClearResetsCounter(t *testing.T) {
	m := New(10)
	m.Append(Entry{Summary: "a"})
	m.Append(Entry{Summary: "a"})
	m.Clear()

	if m.Len() != 0 || m.Total() != 0 {
		t.Fatalf("expected empty viewer, got %d rows, total %d", m.Len(), m.Total())
	}
}
