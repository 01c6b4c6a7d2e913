package calls

import (
	"sort"

	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/phone"
)

// Record is the per-number aggregate bubbles are sized from: every entry
// whose number normalizes to the same key folds into one record.
type Record struct {
	NormalizedNumber     string  `json:"normalizedNumber"`
	DisplayPhoneNumber   string  `json:"displayPhoneNumber"`
	Name                 string  `json:"name,omitempty"`
	CallCount            int     `json:"callCount"`
	TotalDurationSeconds float64 `json:"totalDurationSeconds"`
}

// Aggregate folds raw call-log entries into per-number records. Grouping is
// by normalized number; entries whose number normalizes to nothing are
// skipped. Within a group the display format is the longest raw string seen,
// earliest wins ties, and the name is sticky: the contact book is consulted
// first, a log-carried name fills in otherwise, and once set a name is never
// cleared by later nameless entries. Records come back sorted by total
// duration, longest first, with ties keeping first-encounter order. The
// whole fold is deterministic: same input, same output, same order.
func Aggregate(entries []Entry, contacts []contact.Contact) []Record {
	byKey := make(map[string]*Record)
	order := make([]string, 0)

	for _, e := range entries {
		key := phone.Normalize(e.PhoneNumber)
		if key == "" {
			continue
		}

		rec, ok := byKey[key]
		if !ok {
			rec = &Record{
				NormalizedNumber:   key,
				DisplayPhoneNumber: e.PhoneNumber,
			}
			if c, found := contact.ByNumber(contacts, e.PhoneNumber); found {
				rec.Name = c.Name
			}
			byKey[key] = rec
			order = append(order, key)
		}

		rec.CallCount++
		if e.Duration > 0 {
			rec.TotalDurationSeconds += e.Duration
		}
		if len(e.PhoneNumber) > len(rec.DisplayPhoneNumber) {
			rec.DisplayPhoneNumber = e.PhoneNumber
		}
		if rec.Name == "" && e.Name != "" {
			rec.Name = e.Name
		}
	}

	out := make([]Record, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalDurationSeconds > out[j].TotalDurationSeconds
	})
	return out
}

// DurationIndex maps a contact id to its accumulated call time across every
// number that resolves to it.
type DurationIndex map[string]float64

// BuildDurationIndex distributes aggregated records over the contact book.
// Every contact in the book appears in the index, at zero when none of its
// numbers have calls; only contacts absent from the book miss entirely.
func BuildDurationIndex(records []Record, contacts []contact.Contact) DurationIndex {
	idx := make(DurationIndex, len(contacts))
	for _, c := range contacts {
		idx[c.ID] = 0
		for _, rec := range records {
			if c.Owns(rec.DisplayPhoneNumber) {
				idx[c.ID] += rec.TotalDurationSeconds
			}
		}
	}
	return idx
}

// Lookup satisfies the layout store's duration lookup: found contacts report
// their total, unknown contacts report a miss.
func (ix DurationIndex) Lookup(contactID string) (float64, bool) {
	seconds, ok := ix[contactID]
	return seconds, ok
}
