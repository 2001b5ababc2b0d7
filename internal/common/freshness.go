package common

import "time"

// Default staleness thresholds per data class. Single-symbol lookups are
// gated tighter than bulk trending listings, which tolerate older data.
const (
	DefaultQuoteTTL    = 15 * time.Minute
	DefaultTrendingTTL = 1 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
