// Package timeutil parses and renders the compact duration notation used for
// call-history windows.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the call-history window used when none is provided.
const DefaultWindow = "4w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// ParseWindow parses a human-friendly duration string (for example "4w",
// "3d", or "1w2d6h") and returns the equivalent duration along with a
// canonical, compact representation. Empty input falls back to the default
// window of four weeks.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i == len(s) {
			break
		}

		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return 0, "", fmt.Errorf("invalid duration segment %q", s[start:])
		}
		value, err := strconv.ParseInt(s[start:i], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", s[start:i], err)
		}

		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		unitStart := i
		for i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
			i++
		}
		span, ok := unitSpan(s[unitStart:i])
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", s[unitStart:i])
		}

		total += time.Duration(value) * span
	}

	if total <= 0 {
		return 0, "", errors.New("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// unitSpan resolves one unit token. Common long forms and plurals are
// accepted; the canonical rendering always uses the single-letter form.
func unitSpan(token string) (time.Duration, bool) {
	switch token {
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "d", "day", "days":
		return day, true
	case "w", "wk", "wks", "week", "weeks":
		return week, true
	}
	return 0, false
}

// FormatWindow renders a duration using week/day/hour/minute/second tokens,
// omitting zero components. Durations under one second render as "0s".
func FormatWindow(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	var b strings.Builder
	emit := func(label string, span time.Duration) {
		if n := d / span; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, label)
			d -= n * span
		}
	}
	emit("w", week)
	emit("d", day)
	emit("h", time.Hour)
	emit("m", time.Minute)
	emit("s", time.Second)
	return b.String()
}

// FormatSeconds renders an accumulated call time given in seconds, the unit
// call logs report. Fractional seconds are truncated; negative input renders
// as zero.
func FormatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	return FormatWindow(time.Duration(seconds) * time.Second)
}
