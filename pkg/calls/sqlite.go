package calls

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSource reads the calls table of an exported call-log database. The
// table uses the columns phone call logs ship with: number and name as text,
// duration in seconds, date as milliseconds since the epoch, and the integer
// type encoding.
type SQLiteSource struct {
	Path string
}

func (s *SQLiteSource) Load(ctx context.Context, since time.Time) ([]Entry, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("calls: call log %s: %w", s.Path, err)
	}

	dsn := s.Path + "?_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("calls: open call log: %w", err)
	}
	defer db.Close()

	var cutoff int64
	if !since.IsZero() {
		cutoff = since.UnixMilli()
	}

	rows, err := db.QueryContext(ctx, `
		SELECT number, duration, date, type, COALESCE(name, '')
		FROM calls
		WHERE date >= ?
		ORDER BY date DESC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("calls: query call log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			number   string
			duration float64
			dateMS   int64
			typ      int
			name     string
		)
		if err := rows.Scan(&number, &duration, &dateMS, &typ, &name); err != nil {
			return nil, fmt.Errorf("calls: scan call log row: %w", err)
		}
		if duration < 0 {
			duration = 0
		}
		entries = append(entries, Entry{
			PhoneNumber: number,
			Duration:    duration,
			Type:        Type(typ),
			DateTime:    time.UnixMilli(dateMS),
			Name:        name,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calls: read call log: %w", err)
	}
	return entries, nil
}
