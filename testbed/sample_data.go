package main

import (
	"math/rand"
	"time"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/tui/events"
)

// sampleStore builds a deterministic four-bubble layout on the default
// canvas so every testbed run starts from the same picture.
func sampleStore() *layout.Store {
	base := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	tick := 0
	ls := layout.NewStore(
		layout.Canvas{Width: 400, Height: 640},
		layout.WithRand(rand.New(rand.NewSource(7))),
		layout.WithNow(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
	)

	seeds := []struct {
		id      string
		name    string
		number  string
		seconds float64
		x, y    float64
	}{
		{"c1", "Ada Lovelace", "555-123-4567", 5400, 110, 140},
		{"c2", "Grace Hopper", "555-987-1122", 480, 290, 150},
		{"c3", "Alan Turing", "555-314-1592", 240, 120, 420},
		{"c4", "Edsger Dijkstra", "555-271-8281", 60, 280, 460},
	}
	for _, s := range seeds {
		n, err := ls.Add(s.id, s.name, s.number, s.seconds)
		if err != nil {
			continue
		}
		ls.MoveTo(n.ID, s.x, s.y)
	}
	return ls
}

func sampleContacts() []events.ContactRef {
	return []events.ContactRef{
		{ID: "c1", Name: "Ada Lovelace", Number: "555-123-4567", Placed: true},
		{ID: "c2", Name: "Grace Hopper", Number: "555-987-1122", Placed: true},
		{ID: "c3", Name: "Alan Turing", Number: "555-314-1592", Placed: true},
		{ID: "c4", Name: "Edsger Dijkstra", Number: "555-271-8281", Placed: true},
		{ID: "c5", Name: "Katherine Johnson", Number: "555-202-0001"},
		{ID: "c6", Name: "Annie Easley", Number: "555-202-0002"},
		{ID: "c7", Name: "Radia Perlman", Number: "555-202-0003"},
	}
}
