package app

import (
	"context"
	"time"

	"tableflip.dev/ringo/pkg/calls"
	"tableflip.dev/ringo/pkg/timeutil"
)

// Summary is the call report the surfaces print: aggregated records for the
// window, longest total first, plus the totals across all of them.
type Summary struct {
	Window               string
	Since                time.Time
	Records              []calls.Record
	TotalCalls           int
	TotalDurationSeconds float64
}

// Summary aggregates the call log for the configured window. The records
// arrive already sorted by total duration, so the first record is the
// biggest bubble candidate.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		Window:  timeutil.FormatWindow(s.Window),
		Since:   s.since(),
		Records: records,
	}
	for _, rec := range records {
		out.TotalCalls += rec.CallCount
		out.TotalDurationSeconds += rec.TotalDurationSeconds
	}
	return out, nil
}
