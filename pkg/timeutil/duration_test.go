package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 4 * 7 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "4w" {
		t.Fatalf("expected label 4w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowLongUnits(t *testing.T) {
	dur, label, err := ParseWindow("2 weeks 3 days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 2*7*24*time.Hour + 3*24*time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "2w3d" {
		t.Fatalf("expected canonical 2w3d, got %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, input := range []string{"noop", "4", "3x", "0s"} {
		if _, _, err := ParseWindow(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{-5, "0s"},
		{45, "45s"},
		{75, "1m15s"},
		{3600, "1h"},
		{3725, "1h2m5s"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.seconds); got != tc.want {
			t.Fatalf("FormatSeconds(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
