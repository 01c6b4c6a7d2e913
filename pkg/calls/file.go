package calls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// FileSource reads a JSON export of call-log entries: an array of objects
// with phoneNumber, durationSeconds, type, dateTime, and an optional name.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context, since time.Time) ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("calls: read call log: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var all []Entry
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("calls: parse call log: %w", err)
	}

	entries := make([]Entry, 0, len(all))
	for _, e := range all {
		if !since.IsZero() && e.DateTime.Before(since) {
			continue
		}
		if e.Duration < 0 {
			e.Duration = 0
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DateTime.After(entries[j].DateTime)
	})
	return entries, nil
}
