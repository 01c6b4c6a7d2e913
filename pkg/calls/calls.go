package calls

import (
	"context"
	"time"
)

// Type classifies a call-log entry, using the integer encoding phone call
// logs store on disk.
type Type int

const (
	Incoming Type = 1
	Outgoing Type = 2
	Missed   Type = 3
	Rejected Type = 5
)

func (t Type) String() string {
	switch t {
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	case Missed:
		return "missed"
	case Rejected:
		return "rejected"
	default:
		return "other"
	}
}

// Entry is one validated call-log record. Duration is in seconds, the unit
// call logs report; records with no duration carry zero.
type Entry struct {
	PhoneNumber string    `json:"phoneNumber"`
	Duration    float64   `json:"durationSeconds"`
	Type        Type      `json:"type"`
	DateTime    time.Time `json:"dateTime"`
	Name        string    `json:"name,omitempty"`
}

// Source supplies raw call-log entries, newest first. A zero since loads the
// full log; otherwise only calls at or after since are returned.
type Source interface {
	Load(ctx context.Context, since time.Time) ([]Entry, error)
}
