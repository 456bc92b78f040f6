package core

// status.go derives the subscription lifecycle status from the expiry column.
//
// Comparison is instant-based, not calendar-day based. With the default 7-day
// window: expiry strictly before now is expired; expiry within [now, now+7d)
// is expiring; expiry at exactly now+7d or later is active.

import (
	"strings"
	"time"
)

// ExpiringWindow is the default lead time during which an unexpired
// subscription is reported as expiring.
const ExpiringWindow = 7 * 24 * time.Hour

// expiryLayouts are the date formats accepted in the expiry column. The
// sheet normally holds ISO dates; the rest cover values hand-edited in a
// spreadsheet UI.
var expiryLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1.2.2006",
	"01.02.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Classify derives the status of an expiry value relative to now, using the
// given expiring window. Empty or unparseable expiry text yields
// StatusUnknown.
func Classify(expiryText string, now time.Time, window time.Duration) SubscriptionStatus {
	expiry, ok := ParseExpiry(expiryText)
	if !ok {
		return StatusUnknown
	}

	switch {
	case expiry.Before(now):
		return StatusExpired
	case expiry.Sub(now) < window:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// ParseExpiry parses an expiry cell into an instant. Date-only layouts parse
// as midnight UTC.
func ParseExpiry(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
