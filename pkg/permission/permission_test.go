package permission

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		err  bool
	}{
		{"granted", Granted, false},
		{"", Granted, false},
		{"denied", Denied, false},
		{"blocked", Blocked, false},
		{"maybe", Granted, true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.err && err == nil {
			t.Fatalf("ParseStatus(%q) expected error", tc.in)
		}
		if !tc.err && err != nil {
			t.Fatalf("ParseStatus(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTableDefaultsToGranted(t *testing.T) {
	gate := Table{CallLog: Denied}
	if gate.Request(CallLog) != Denied {
		t.Fatalf("configured capability must answer as configured")
	}
	if gate.Request(Contacts) != Granted {
		t.Fatalf("unconfigured capability must default to granted")
	}
}
