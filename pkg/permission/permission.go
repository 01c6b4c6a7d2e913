package permission

import "fmt"

// Capability names a guarded data source.
type Capability string

const (
	Contacts Capability = "contacts"
	CallLog  Capability = "call-log"
)

// Status is the answer a gate gives for a capability. Denied is recoverable:
// the user can grant and retry within the same session. Blocked is terminal
// until something outside the session changes the gate's configuration.
type Status int

const (
	Granted Status = iota
	Denied
	Blocked
)

func (s Status) String() string {
	switch s {
	case Denied:
		return "denied"
	case Blocked:
		return "blocked"
	default:
		return "granted"
	}
}

// ParseStatus reads a status from its configuration spelling.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "granted", "":
		return Granted, nil
	case "denied":
		return Denied, nil
	case "blocked":
		return Blocked, nil
	default:
		return Granted, fmt.Errorf("permission: unknown status %q", s)
	}
}

// Gate answers whether the process may read a guarded source. Asking is
// side-effect free and repeatable; a denied capability may well be granted
// on a later ask.
type Gate interface {
	Request(c Capability) Status
}

// Table is a fixed gate keyed by capability. Capabilities without an entry
// are granted.
type Table map[Capability]Status

func (t Table) Request(c Capability) Status {
	if s, ok := t[c]; ok {
		return s
	}
	return Granted
}
