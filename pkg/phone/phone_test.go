package phone

import "testing"

func TestNormalizeStripsFormatting(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"(555) 123-4567", "5551234567"},
		{"555-123-4567", "5551234567"},
		{"555 123 4567", "5551234567"},
		{"+1 (555) 123-4567", "5551234567"},
		{"5551234567", "5551234567"},
		{"123-4567", "1234567"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.raw); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeKeepsLastTen(t *testing.T) {
	if got := Normalize("001115551234567"); got != "5551234567" {
		t.Fatalf("expected trailing ten characters, got %q", got)
	}
}

func TestSameLineSuffixBothDirections(t *testing.T) {
	if !SameLine("555-123-4567", "(555) 123-4567") {
		t.Fatalf("differently formatted copies of one number should match")
	}
	if !SameLine("123-4567", "555-123-4567") {
		t.Fatalf("seven digit local form should match its ten digit form")
	}
	if !SameLine("555-123-4567", "123-4567") {
		t.Fatalf("suffix match should work from either side")
	}
	if SameLine("555-999-4567", "555-123-4567") {
		t.Fatalf("distinct numbers must not match")
	}
}

func TestSameLineEmptyNeverMatches(t *testing.T) {
	if SameLine("", "") {
		t.Fatalf("empty numbers must not match each other")
	}
	if SameLine("", "555-123-4567") {
		t.Fatalf("empty must not match a real number")
	}
}
