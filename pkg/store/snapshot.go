package store

import (
	"encoding/json"
	"fmt"
	"os"

	"tableflip.dev/ringo/pkg/layout"
)

// The layout persists as two JSON documents under fixed keys: the ordered
// bubble array and the selected contact ids. The keys are part of the
// storage contract and never change.
const (
	KeyBubbles  = "contact_bubbles"
	KeySelected = "selected_contact_ids"
)

// SaveLayout writes both layout documents. There is no read-modify-write
// cycle and no locking: the last writer wins, which is the contract single
// snapshots are saved under.
func SaveLayout(kv KV, snap layout.Snapshot) error {
	bubbles := snap.Bubbles
	if bubbles == nil {
		bubbles = []*layout.BubbleNode{}
	}
	data, err := json.Marshal(bubbles)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", KeyBubbles, err)
	}
	if err := kv.Set(KeyBubbles, string(data)); err != nil {
		return err
	}

	ids := snap.SelectedContactIDs
	if ids == nil {
		ids = []string{}
	}
	data, err = json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", KeySelected, err)
	}
	return kv.Set(KeySelected, string(data))
}

// LoadLayout reads the saved layout. A missing document reads as empty, and
// a corrupt one is reported to stderr and skipped: the session starts with a
// clean canvas instead of failing.
func LoadLayout(kv KV) layout.Snapshot {
	var snap layout.Snapshot
	if raw, ok := kv.Get(KeyBubbles); ok {
		if err := json.Unmarshal([]byte(raw), &snap.Bubbles); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %v\n", KeyBubbles, err)
			snap.Bubbles = nil
		}
	}
	if raw, ok := kv.Get(KeySelected); ok {
		if err := json.Unmarshal([]byte(raw), &snap.SelectedContactIDs); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %v\n", KeySelected, err)
			snap.SelectedContactIDs = nil
		}
	}
	return snap
}
