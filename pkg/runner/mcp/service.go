// Package mcp provides the Model Context Protocol server integration for the
// bubble layout.
package mcp

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/timeutil"
)

// Service wraps the layout service for the MCP server. The layout engine is
// single-writer, so every operation holds one mutex; concurrent tool calls
// serialize instead of racing the load-modify-save cycle.
type Service struct {
	App *app.Service

	mu sync.Mutex
}

// NewService builds a service wrapper around the layout service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// BubbleDTO is a transport-friendly projection of a placed bubble.
type BubbleDTO struct {
	ID                  string  `json:"id"`
	ContactID           string  `json:"contactId"`
	ContactName         string  `json:"contactName"`
	PhoneNumber         string  `json:"phoneNumber,omitempty"`
	Size                float64 `json:"size"`
	X                   float64 `json:"x"`
	Y                   float64 `json:"y"`
	CallDurationSeconds float64 `json:"callDurationSeconds"`
	CallDurationLabel   string  `json:"callDurationLabel"`
}

// LayoutDTO is the full layout snapshot plus the canvas it is laid out on.
type LayoutDTO struct {
	CanvasWidth        float64     `json:"canvasWidth"`
	CanvasHeight       float64     `json:"canvasHeight"`
	Bubbles            []BubbleDTO `json:"bubbles"`
	SelectedContactIDs []string    `json:"selectedContactIds"`
	Count              int         `json:"count"`
	Limit              int         `json:"limit"`
}

// ContactDTO is a transport-friendly projection of a contact.
type ContactDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
	HasBubble    bool     `json:"hasBubble"`
}

// RecordDTO is one aggregated call line.
type RecordDTO struct {
	Name                 string  `json:"name,omitempty"`
	PhoneNumber          string  `json:"phoneNumber"`
	CallCount            int     `json:"callCount"`
	TotalDurationSeconds float64 `json:"totalDurationSeconds"`
	TotalDurationLabel   string  `json:"totalDurationLabel"`
}

// SummaryDTO is the aggregated call report for the configured window.
type SummaryDTO struct {
	Window               string      `json:"window"`
	Since                string      `json:"since,omitempty"`
	Records              []RecordDTO `json:"records"`
	TotalCalls           int         `json:"totalCalls"`
	TotalDurationSeconds float64     `json:"totalDurationSeconds"`
}

// MoveResult reports the outcome of a move offer.
type MoveResult struct {
	Moved  bool       `json:"moved"`
	Bubble *BubbleDTO `json:"bubble,omitempty"`
}

func (s *Service) guard() error {
	if s.App == nil {
		return errors.New("layout service is not configured")
	}
	return nil
}

// Layout returns the current bubble layout.
func (s *Service) Layout(context.Context) (LayoutDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return LayoutDTO{}, err
	}
	snap, err := s.App.Bubbles()
	if err != nil {
		return LayoutDTO{}, err
	}
	return s.toLayoutDTO(snap), nil
}

// AddBubble places a bubble for a contact reference and returns it along with
// any degradation notes from the data load.
func (s *Service) AddBubble(ctx context.Context, ref string) (*BubbleDTO, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, nil, err
	}
	if ref == "" {
		return nil, nil, errors.New("contact reference is required")
	}
	node, notes, err := s.App.AddBubble(ctx, ref)
	if err != nil {
		return nil, notes, err
	}
	dto := toBubbleDTO(node)
	return &dto, notes, nil
}

// MoveBubble offers a position for a bubble. A rejected offer is not an
// error; the result reports whether the move was admitted.
func (s *Service) MoveBubble(ctx context.Context, id string, x, y float64) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return MoveResult{}, err
	}
	moved, err := s.App.MoveBubble(id, x, y)
	if err != nil {
		return MoveResult{}, err
	}

	snap, err := s.App.Bubbles()
	if err != nil {
		return MoveResult{Moved: moved}, err
	}
	for _, n := range snap.Bubbles {
		if n.ID == id {
			dto := toBubbleDTO(n)
			return MoveResult{Moved: moved, Bubble: &dto}, nil
		}
	}
	return MoveResult{Moved: moved}, nil
}

// RemoveBubble drops the bubble for a contact reference. Removing a contact
// with no bubble reports false without failing.
func (s *Service) RemoveBubble(ctx context.Context, ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return false, err
	}
	if ref == "" {
		return false, errors.New("contact reference is required")
	}
	return s.App.RemoveBubble(ctx, ref)
}

// RefreshBubbles re-sizes every bubble from current call data.
func (s *Service) RefreshBubbles(ctx context.Context) (LayoutDTO, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return LayoutDTO{}, nil, err
	}
	snap, notes, err := s.App.RefreshBubbles(ctx)
	if err != nil {
		return LayoutDTO{}, notes, err
	}
	return s.toLayoutDTO(snap), notes, nil
}

// ClearLayout removes every bubble and the selection.
func (s *Service) ClearLayout(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}
	return s.App.ClearLayout()
}

// ListContacts returns the contact book, marking contacts that already have
// a bubble.
func (s *Service) ListContacts(ctx context.Context) ([]ContactDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}
	book, err := s.App.Contacts(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.App.Bubbles()
	if err != nil {
		return nil, err
	}
	placed := make(map[string]bool, len(snap.Bubbles))
	for _, n := range snap.Bubbles {
		placed[n.ContactID] = true
	}

	out := make([]ContactDTO, 0, len(book))
	for _, c := range book {
		out = append(out, ContactDTO{
			ID:           c.ID,
			Name:         c.Name,
			PhoneNumbers: c.PhoneNumbers,
			HasBubble:    placed[c.ID],
		})
	}
	return out, nil
}

// ContactByRef resolves a contact by id, name, or phone number.
func (s *Service) ContactByRef(ctx context.Context, ref string) (ContactDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return ContactDTO{}, err
	}
	if ref == "" {
		return ContactDTO{}, errors.New("contact reference is required")
	}
	book, err := s.App.Contacts(ctx)
	if err != nil {
		return ContactDTO{}, err
	}
	c, ok := contact.Find(book, ref)
	if !ok {
		return ContactDTO{}, app.ErrContactNotFound
	}

	placed := false
	if snap, err := s.App.Bubbles(); err == nil {
		for _, n := range snap.Bubbles {
			if n.ContactID == c.ID {
				placed = true
				break
			}
		}
	}
	return ContactDTO{
		ID:           c.ID,
		Name:         c.Name,
		PhoneNumbers: c.PhoneNumbers,
		HasBubble:    placed,
	}, nil
}

// CallSummary returns the aggregated call report for the configured window.
func (s *Service) CallSummary(ctx context.Context) (SummaryDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return SummaryDTO{}, err
	}
	sum, err := s.App.Summary(ctx)
	if err != nil {
		return SummaryDTO{}, err
	}

	records := make([]RecordDTO, 0, len(sum.Records))
	for _, r := range sum.Records {
		records = append(records, RecordDTO{
			Name:                 r.Name,
			PhoneNumber:          r.DisplayPhoneNumber,
			CallCount:            r.CallCount,
			TotalDurationSeconds: r.TotalDurationSeconds,
			TotalDurationLabel:   timeutil.FormatSeconds(r.TotalDurationSeconds),
		})
	}

	dto := SummaryDTO{
		Window:               sum.Window,
		Records:              records,
		TotalCalls:           sum.TotalCalls,
		TotalDurationSeconds: sum.TotalDurationSeconds,
	}
	if !sum.Since.IsZero() {
		dto.Since = sum.Since.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return dto, nil
}

func (s *Service) toLayoutDTO(snap layout.Snapshot) LayoutDTO {
	canvas := layout.DefaultCanvas
	if s.App != nil && s.App.Canvas.Width > 0 && s.App.Canvas.Height > 0 {
		canvas = s.App.Canvas
	}

	bubbles := make([]BubbleDTO, 0, len(snap.Bubbles))
	for _, n := range snap.Bubbles {
		bubbles = append(bubbles, toBubbleDTO(n))
	}
	ids := snap.SelectedContactIDs
	if ids == nil {
		ids = []string{}
	}
	return LayoutDTO{
		CanvasWidth:        canvas.Width,
		CanvasHeight:       canvas.Height,
		Bubbles:            bubbles,
		SelectedContactIDs: ids,
		Count:              len(bubbles),
		Limit:              layout.MaxBubbles,
	}
}

func toBubbleDTO(n *layout.BubbleNode) BubbleDTO {
	return BubbleDTO{
		ID:                  n.ID,
		ContactID:           n.ContactID,
		ContactName:         n.ContactName,
		PhoneNumber:         n.PhoneNumber,
		Size:                n.Size,
		X:                   n.Position.X,
		Y:                   n.Position.Y,
		CallDurationSeconds: n.CallDurationSeconds,
		CallDurationLabel:   timeutil.FormatSeconds(n.CallDurationSeconds),
	}
}
