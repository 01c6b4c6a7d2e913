package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/ringo/pkg/calls"
	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/permission"
	"tableflip.dev/ringo/pkg/store"
)

// Service provides high-level operations over the permission gate, the data
// sources, and the persisted layout, so the CLI, the TUI, and the MCP server
// share one behavior.
type Service struct {
	Gate   permission.Gate
	Book   contact.Source
	Log    calls.Source
	KV     store.KV
	Canvas layout.Canvas

	// Window bounds how far back the call log is read. Zero reads it all.
	Window time.Duration

	// Now is the clock used for window math; tests pin it. Nil means
	// time.Now.
	Now func() time.Time
}

var (
	ErrPermissionDenied  = errors.New("app: permission denied")
	ErrPermissionBlocked = errors.New("app: permission blocked")
	ErrSourceUnavailable = errors.New("app: data source unavailable")
	ErrContactNotFound   = errors.New("app: contact not found")
	ErrNoBubble          = errors.New("app: no bubble for contact")
)

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) since() time.Time {
	if s.Window <= 0 {
		return time.Time{}
	}
	return s.now().Add(-s.Window)
}

func (s *Service) canvas() layout.Canvas {
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return layout.DefaultCanvas
	}
	return s.Canvas
}

func (s *Service) gate(c permission.Capability) error {
	if s.Gate == nil {
		return nil
	}
	switch s.Gate.Request(c) {
	case permission.Denied:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, c)
	case permission.Blocked:
		return fmt.Errorf("%w: %s", ErrPermissionBlocked, c)
	}
	return nil
}

// Contacts returns the contact book, enforcing the contacts capability.
func (s *Service) Contacts(ctx context.Context) ([]contact.Contact, error) {
	if err := s.gate(permission.Contacts); err != nil {
		return nil, err
	}
	if s.Book == nil {
		return nil, fmt.Errorf("%w: no contact book configured", ErrSourceUnavailable)
	}
	book, err := s.Book.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return book, nil
}

// Entries returns raw call-log entries for the configured window, enforcing
// the call-log capability.
func (s *Service) Entries(ctx context.Context) ([]calls.Entry, error) {
	if err := s.gate(permission.CallLog); err != nil {
		return nil, err
	}
	if s.Log == nil {
		return nil, fmt.Errorf("%w: no call log configured", ErrSourceUnavailable)
	}
	entries, err := s.Log.Load(ctx, s.since())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return entries, nil
}

// Records aggregates the call log. The call log is required; the contact
// book only lends names and is skipped without error when unreadable.
func (s *Service) Records(ctx context.Context) ([]calls.Record, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	book, err := s.Contacts(ctx)
	if err != nil {
		book = nil
	}
	return calls.Aggregate(entries, book), nil
}

// Durations assembles the duration index bubbles are sized from, degrading
// instead of failing: a denied, blocked, or unreadable source contributes
// nothing and adds a user-facing note. With no call data every contact
// reports zero and bubbles sit at minimum size.
func (s *Service) Durations(ctx context.Context) (calls.DurationIndex, []contact.Contact, []string) {
	var notes []string

	book, err := s.Contacts(ctx)
	if err != nil {
		notes = append(notes, degradeNote("contacts", err))
		book = nil
	}
	entries, err := s.Entries(ctx)
	if err != nil {
		notes = append(notes, degradeNote("call log", err))
		entries = nil
	}

	records := calls.Aggregate(entries, book)
	return calls.BuildDurationIndex(records, book), book, notes
}

func degradeNote(what string, err error) string {
	switch {
	case errors.Is(err, ErrPermissionBlocked):
		return fmt.Sprintf("%s access is blocked; update the permissions config to use live data", what)
	case errors.Is(err, ErrPermissionDenied):
		return fmt.Sprintf("%s access was denied; grant it and retry", what)
	default:
		return fmt.Sprintf("%s unavailable: %v", what, err)
	}
}

// LayoutStore materializes the persisted layout onto the configured canvas.
// A missing or unreadable snapshot starts a clean layout; restored bubbles
// are re-sized and clamped for the canvas in use, since the snapshot may
// have been written against a different one.
func (s *Service) LayoutStore() (*layout.Store, error) {
	if s.KV == nil {
		return nil, errors.New("app: no store configured")
	}
	ls := layout.NewStore(s.canvas())
	ls.Restore(store.LoadLayout(s.KV))
	ls.Resize(s.canvas())
	return ls, nil
}

// SaveLayout persists the store's current snapshot.
func (s *Service) SaveLayout(ls *layout.Store) error {
	if s.KV == nil {
		return errors.New("app: no store configured")
	}
	if err := store.SaveLayout(s.KV, ls.Snapshot()); err != nil {
		return fmt.Errorf("app: save layout: %w", err)
	}
	return nil
}

// Bubbles returns the persisted layout snapshot.
func (s *Service) Bubbles() (layout.Snapshot, error) {
	ls, err := s.LayoutStore()
	if err != nil {
		return layout.Snapshot{}, err
	}
	return ls.Snapshot(), nil
}

// AddBubble places a bubble for a contact reference (id, name, or number),
// sized from current call data. Degradation notes from the data load ride
// along even on success.
func (s *Service) AddBubble(ctx context.Context, ref string) (*layout.BubbleNode, []string, error) {
	book, err := s.Contacts(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, ok := contact.Find(book, ref)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrContactNotFound, ref)
	}

	var notes []string
	entries, err := s.Entries(ctx)
	if err != nil {
		notes = append(notes, degradeNote("call log", err))
		entries = nil
	}
	idx := calls.BuildDurationIndex(calls.Aggregate(entries, book), book)
	seconds, _ := idx.Lookup(c.ID)

	ls, err := s.LayoutStore()
	if err != nil {
		return nil, notes, err
	}
	n, err := ls.Add(c.ID, c.Name, primaryNumber(c), seconds)
	if err != nil {
		return nil, notes, err
	}
	if err := s.SaveLayout(ls); err != nil {
		return n, notes, err
	}
	return n, notes, nil
}

// RemoveBubble drops the bubble for a contact reference. The reference is
// resolved against the book when readable and against the placed bubbles
// otherwise, so removal still works with contacts access revoked. Removing
// a contact with no bubble is a quiet no-op.
func (s *Service) RemoveBubble(ctx context.Context, ref string) (bool, error) {
	ls, err := s.LayoutStore()
	if err != nil {
		return false, err
	}

	contactID := strings.TrimSpace(ref)
	if book, err := s.Contacts(ctx); err == nil {
		if c, ok := contact.Find(book, ref); ok {
			contactID = c.ID
		}
	}
	if _, ok := ls.NodeForContact(contactID); !ok {
		if n, ok := nodeByLooseRef(ls, ref); ok {
			contactID = n.ContactID
		}
	}

	removed := ls.Remove(contactID)
	if !removed {
		return false, nil
	}
	if err := s.SaveLayout(ls); err != nil {
		return true, err
	}
	return true, nil
}

// nodeByLooseRef matches a placed bubble by bubble id, contact id, or
// contact name.
func nodeByLooseRef(ls *layout.Store, ref string) (*layout.BubbleNode, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	for _, n := range ls.Nodes() {
		if n.ID == ref || n.ContactID == ref || strings.EqualFold(n.ContactName, ref) {
			return n, true
		}
	}
	return nil, false
}

// MoveBubble offers a position for a placed bubble through the validator.
// The move reports whether it was admitted; an id with no bubble is an
// error, not a silent accept.
func (s *Service) MoveBubble(id string, x, y float64) (bool, error) {
	ls, err := s.LayoutStore()
	if err != nil {
		return false, err
	}
	if _, ok := ls.Node(id); !ok {
		return false, fmt.Errorf("%w: %q", ErrNoBubble, id)
	}
	moved := ls.MoveTo(id, x, y)
	if !moved {
		return false, nil
	}
	if err := s.SaveLayout(ls); err != nil {
		return true, err
	}
	return true, nil
}

// RefreshBubbles re-sizes every bubble from current call data and persists
// the result. Positions never change; contacts that cannot be resolved keep
// their last known size.
func (s *Service) RefreshBubbles(ctx context.Context) (layout.Snapshot, []string, error) {
	ls, err := s.LayoutStore()
	if err != nil {
		return layout.Snapshot{}, nil, err
	}
	idx, _, notes := s.Durations(ctx)
	ls.RefreshDurations(idx.Lookup)
	if err := s.SaveLayout(ls); err != nil {
		return ls.Snapshot(), notes, err
	}
	return ls.Snapshot(), notes, nil
}

// ClearLayout removes every bubble and the selection.
func (s *Service) ClearLayout() error {
	ls, err := s.LayoutStore()
	if err != nil {
		return err
	}
	ls.Clear()
	return s.SaveLayout(ls)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.KV == nil {
		return nil, errors.New("app: no store configured")
	}
	return s.KV.Watch(ctx)
}

func primaryNumber(c contact.Contact) string {
	if len(c.PhoneNumbers) == 0 {
		return ""
	}
	return c.PhoneNumbers[0]
}
