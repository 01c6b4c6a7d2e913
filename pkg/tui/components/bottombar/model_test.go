package bottombar

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewShowsStatusAndHelp(t *testing.T) {
	m := New("a add · q quit")
	m.SetSize(40, 3)
	m.SetStatus("ready")

	view := stripANSI(m.View())
	if !strings.Contains(view, "ready") {
		t.Fatalf("expected status in view, got %q", view)
	}
	if !strings.Contains(view, "a add") {
		t.Fatalf("expected help in view, got %q", view)
	}
}

func TestErrorReplacesStatusUntilNextStatus(t *testing.T) {
	m := New("")
	m.SetSize(40, 1)
	m.SetStatus("ready")
	m.SetError("store unavailable")

	view := stripANSI(m.View())
	if !strings.Contains(view, "store unavailable") {
		t.Fatalf("expected error in view, got %q", view)
	}
	if strings.Contains(view, "ready") {
		t.Fatalf("expected error to replace status, got %q", view)
	}

	m.SetStatus("saved")
	view = stripANSI(m.View())
	if !strings.Contains(view, "saved") {
		t.Fatalf("expected new status in view, got %q", view)
	}
	if strings.Contains(view, "store unavailable") {
		t.Fatalf("expected error cleared by status, got %q", view)
	}
}

func TestHeightGrowsWhenHelpWraps(t *testing.T) {
	m := New("drag with the mouse · a add · tab cycle · dd remove")

	wide := m.Height(80)
	if wide != 2 {
		t.Fatalf("expected 2 rows at width 80, got %d", wide)
	}

	narrow := m.Height(12)
	if narrow <= wide {
		t.Fatalf("expected wrapped help to need more rows, got %d vs %d", narrow, wide)
	}
}

func TestHeightWithoutHelpIsSingleRow(t *testing.T) {
	m := New("")
	if got := m.Height(40); got != 1 {
		t.Fatalf("expected 1 row, got %d", got)
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := New("help")
	if got := m.View(); got != "" {
		t.Fatalf("expected empty view before sizing, got %q", got)
	}
}
