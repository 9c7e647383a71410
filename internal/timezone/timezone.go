// Package timezone normalizes all timestamps into the single operational
// timezone the calendar works in.
//
// Every timestamp entering or leaving the calendar gateway passes through a
// Normalizer first, so no timestamp is ever stored or compared in a
// mismatched zone.
package timezone

import (
	"fmt"
	"time"
)

// Layouts accepted for zone-naive timestamps coming back from the language
// model. Naive timestamps are interpreted in the operational zone without an
// instant shift.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalizer converts timestamps into one fixed operational timezone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer loads the IANA timezone identifier (e.g. "Asia/Dubai").
func NewNormalizer(tz string) (*Normalizer, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return &Normalizer{loc: loc}, nil
}

// Location returns the operational timezone location.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize converts t into the operational zone, preserving the absolute
// instant. Idempotent: normalizing an already-normalized timestamp is a
// no-op.
func (n *Normalizer) Normalize(t time.Time) time.Time {
	return t.In(n.loc)
}

// ParseTimestamp parses a timestamp string at the model-output boundary.
//
// Zone-carrying strings (RFC 3339) are converted into the operational zone
// with the instant preserved. Zone-naive strings are assumed to already be in
// the operational zone and are tagged as such, with no arithmetic shift.
func (n *Normalizer) ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return n.Normalize(t), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// StartOfDay returns 00:00:00 of t's calendar day in the operational zone.
func (n *Normalizer) StartOfDay(t time.Time) time.Time {
	t = n.Normalize(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, n.loc)
}

// EndOfDay returns the last representable instant of t's calendar day in the
// operational zone.
func (n *Normalizer) EndOfDay(t time.Time) time.Time {
	t = n.Normalize(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, n.loc)
}
